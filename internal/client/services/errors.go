package services

import "errors"

var (
	ErrIllegalState      = errors.New("illegal state")
	ErrValidation        = errors.New("validation failed")
	ErrNoFigure          = errors.New("no figure")
	ErrUnsupportedFigure = errors.New("figure file format not supported")
	ErrFigureTooLarge    = errors.New("figure file is too large")
	ErrNoTarget          = errors.New("conference id or abstract id must be defined")
	ErrNotSaved          = errors.New("abstract is not saved")
	ErrNoAbstract        = errors.New("no abstract loaded")
	// ErrNotReloaded means a figure change reached the server but the
	// abstract could not be loaded again afterwards.
	ErrNotReloaded = errors.New("abstract not reloaded")
)
