package services

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gnode/gcaeditor/internal/client/models"
	"github.com/gnode/gcaeditor/internal/client/models/modelstest"
	"github.com/gnode/gcaeditor/internal/workflow"
)

var _ = Describe("Editor", func() {
	var (
		ctx context.Context
		fc  *fakeClient
		ds  *memDrafts
		e   *Editor
	)

	BeforeEach(func() {
		ctx = context.Background()
		fc = newFakeClient()
		ds = newMemDrafts()
		conf := modelstest.NewConferenceStub()
		fc.addConference(conf)

		e = NewEditor(Deps{Client: fc, Drafts: ds}, conf.UUID, "")
		Expect(e.Init(ctx)).To(Succeed())
		*e.Abstract() = *modelstest.NewAbstractStub().Get()
	})

	Context("saving repeatedly", func() {
		DescribeTable("creates once and updates afterwards",
			func(saves int) {
				for i := 0; i < saves; i++ {
					Expect(e.Save(ctx, nil)).To(Succeed())
				}
				Expect(fc.creates).To(Equal(1))
				Expect(fc.updates).To(Equal(saves - 1))
				Expect(fc.abstracts).To(HaveLen(1))
			},
			Entry("one save", 1),
			Entry("two saves", 2),
			Entry("five saves", 5),
		)
	})

	Context("a new abstract", func() {
		It("can be submitted straight away", func() {
			e.Abstract().State = workflow.Submitted

			Expect(e.Save(ctx, nil)).To(Succeed())
			Expect(e.IsSaved()).To(BeTrue())
			Expect(e.PriorState()).To(Equal(workflow.Submitted))
			Expect(e.CanWithdraw()).To(BeTrue())
			Expect(fc.creates).To(Equal(1))

			By("moving it back to preparation without a request")
			e.Abstract().State = workflow.InPreparation
			Expect(e.IsChangeOk(nil)).To(BeFalse())
			Expect(e.Save(ctx, nil)).To(MatchError(ErrIllegalState))
			Expect(fc.creates).To(Equal(1))
			Expect(fc.updates).To(BeZero())
			Expect(fc.stored(e.Abstract().UUID).State).To(Equal(workflow.Submitted))
		})

		It("cannot be created as withdrawn", func() {
			e.Abstract().State = workflow.Withdrawn

			Expect(e.Save(ctx, nil)).To(MatchError(ErrIllegalState))
			Expect(fc.creates).To(BeZero())
		})
	})

	Context("the full life cycle", func() {
		It("edits, saves, attaches a figure, submits and withdraws", func() {
			By("editing before the first save")
			Expect(e.StartEdit()).To(Succeed())
			e.Edited().Title = models.Str("Spike sorting at scale")
			_, err := e.AddAuthor()
			Expect(err).NotTo(HaveOccurred())
			Expect(e.EndEdit(ctx)).To(Succeed())
			Expect(ds.records).To(HaveKey(e.DraftKey()))

			By("saving the abstract")
			Expect(e.Save(ctx, nil)).To(Succeed())
			Expect(e.IsSaved()).To(BeTrue())
			Expect(ds.records).To(BeEmpty())
			msg, _ := e.Message()
			Expect(msg.Text).To(ContainSubstring("author 4 has no last name"))

			By("uploading a figure")
			Expect(e.AttachFigure("raster plot", writeFile(GinkgoT(), "raster.png", 128))).To(Succeed())
			Expect(e.UploadFigure(ctx)).To(Succeed())
			Expect(e.HasFigures()).To(BeTrue())

			By("editing the saved abstract keeps the figure")
			Expect(e.StartEdit()).To(Succeed())
			e.Edited().Topic = models.Str("Methods")
			Expect(e.EndEdit(ctx)).To(Succeed())
			Expect(e.HasFigures()).To(BeTrue())
			Expect(models.Deref(e.Abstract().Topic)).To(Equal("Methods"))

			By("submitting and withdrawing")
			Expect(e.Submit(ctx)).To(Succeed())
			Expect(e.RemoveFigure(ctx)).To(MatchError(ErrIllegalState))
			Expect(e.Withdraw(ctx)).To(Succeed())
			Expect(e.Abstract().State).To(Equal(workflow.Withdrawn))
			Expect(e.CanSave()).To(BeFalse())
			Expect(e.CanReactivate()).To(BeTrue())

			Expect(fc.creates).To(Equal(1))
			Expect(fc.updates).To(Equal(3))
			Expect(fc.uploads).To(Equal(1))
		})
	})
})
