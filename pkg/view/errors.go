package view

import "errors"

var (
	ErrTemplateNotFound = errors.New("view: template not found")
	ErrRender           = errors.New("view: failed to render template")
)
