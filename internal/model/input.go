package model

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type NewMission struct {
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    string  `json:"category" validate:"required,max=50"`
}

// MissionEdit holds optional changes. Nil fields are left as is.
type MissionEdit struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=50"`
}

type ChatInput struct {
	Message string `json:"message" validate:"required,max=2000"`
}

func (n *NewMission) Normalize() {
	n.Name = strings.TrimSpace(n.Name)
	n.Category = strings.TrimSpace(n.Category)
	n.Description = trimmedOrNil(n.Description)
}

// Normalize trims values. A blank name or category means no change.
func (e *MissionEdit) Normalize() {
	e.Name = trimmedOrNil(e.Name)
	e.Category = trimmedOrNil(e.Category)

	if e.Description != nil {
		d := strings.TrimSpace(*e.Description)
		e.Description = &d
	}
}

func (e *MissionEdit) Empty() bool {
	return e.Name == nil && e.Description == nil && e.Category == nil
}

type MissionFilter struct {
	Status         *MissionStatus
	Name           string
	Category       string
	ExcludeChiefID uint
	Page           int
	Limit          int
}

// Normalize applies paging defaults.
func (f *MissionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}

	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}

	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
}

func (f *MissionFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}

	return &v
}
