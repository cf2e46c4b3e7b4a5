// Package modelstest builds populated entities for tests.
package modelstest

import (
	"strconv"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/workflow"
)

type AbstractStub struct {
	abstract *models.Abstract
}

// NewAbstractStub returns an unsaved abstract with two affiliations, three
// authors linked to them and one reference.
func NewAbstractStub() AbstractStub {
	a := models.NewAbstract()
	a.Title = models.Str(gofakeit.Sentence(6))
	a.Topic = models.Str(gofakeit.BuzzWord())
	a.Text = models.Str(gofakeit.Paragraph(2, 3, 8, "\n"))
	a.ConflictOfInterest = models.Str("None")
	a.Acknowledgements = models.Str(gofakeit.Sentence(5))

	for i := 0; i < 2; i++ {
		af := a.AddAffiliation()
		af.Name = models.Str(gofakeit.Company())
		af.Department = models.Str(gofakeit.JobDescriptor())
		af.Address = models.Str(gofakeit.Street())
		af.Country = models.Str(gofakeit.Country())
	}

	for i := 0; i < 3; i++ {
		au := a.AddAuthor()
		au.FirstName = models.Str(gofakeit.FirstName())
		au.LastName = models.Str(gofakeit.LastName())
		au.Mail = models.Str(gofakeit.Email())
		au.Affiliations = []int{i % 2}
	}

	r := a.AddReference()
	r.Authors = models.Str(gofakeit.Name())
	r.Title = models.Str(gofakeit.Sentence(4))
	r.Year = models.Str(strconv.Itoa(gofakeit.Year()))
	r.DOI = models.Str("10.1000/" + gofakeit.LetterN(6))

	return AbstractStub{abstract: a}
}

// Saved gives the abstract and its children server identities.
func (s AbstractStub) Saved() AbstractStub {
	s.abstract.UUID = gofakeit.UUID()
	s.abstract.Owners = models.Str("/api/abstracts/" + s.abstract.UUID + "/owners")
	for _, au := range s.abstract.Authors {
		au.UUID = gofakeit.UUID()
	}
	for _, af := range s.abstract.Affiliations {
		af.UUID = gofakeit.UUID()
	}
	for _, r := range s.abstract.References {
		r.UUID = gofakeit.UUID()
	}
	return s
}

func (s AbstractStub) WithState(st workflow.State) AbstractStub {
	s.abstract.State = st
	return s
}

func (s AbstractStub) WithText(text string) AbstractStub {
	s.abstract.Text = models.Str(text)
	return s
}

func (s AbstractStub) WithFigure() AbstractStub {
	id := gofakeit.UUID()
	s.abstract.Figures = append(s.abstract.Figures, &models.Figure{
		Identity: models.Identity{UUID: id},
		Name:     models.Str(gofakeit.Word() + ".png"),
		Caption:  models.Str(gofakeit.Sentence(3)),
		File:     models.Str("/api/figures/" + id + "/image"),
	})
	return s
}

func (s AbstractStub) Get() *models.Abstract {
	return s.abstract
}

// NewConferenceStub returns a saved, open conference with two groups.
func NewConferenceStub() *models.Conference {
	c := models.NewConference()
	c.UUID = gofakeit.UUID()
	c.Name = models.Str(gofakeit.Company() + " Conference")
	c.Short = models.Str(gofakeit.LetterN(4))
	c.IsOpen = true
	for i := 1; i <= 2; i++ {
		g := models.NewAbstractGroup()
		g.UUID = gofakeit.UUID()
		g.Prefix = i
		g.Name = models.Str(gofakeit.BuzzWord())
		c.Groups = append(c.Groups, g)
	}
	c.Abstracts = models.Str("/api/conferences/" + c.UUID + "/abstracts")
	return c
}
