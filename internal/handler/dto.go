package handler

import (
	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
	"github.com/msomdec/spartan-directory/internal/service"
)

// UserDTO is the JSON representation of the session user.
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserDTO(u domain.SessionUser) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// SpartanDTO is the JSON representation of a directory record.
type SpartanDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	College     string `json:"college"`
	DateJoined  string `json:"dateJoined"`
	ApprovedBy  string `json:"approvedBy"`
	Status      string `json:"status"`
	AvatarURL   string `json:"avatarUrl"`
}

func toSpartanDTO(s domain.Spartan) SpartanDTO {
	return SpartanDTO{
		ID:          s.ID,
		Name:        s.Name,
		Designation: s.Designation,
		College:     s.College,
		DateJoined:  s.DateJoined,
		ApprovedBy:  s.ApprovedBy,
		Status:      string(s.Status),
		AvatarURL:   s.AvatarURL,
	}
}

// PageDTO is the JSON representation of one rendered directory page.
type PageDTO struct {
	Items         []SpartanDTO `json:"items"`
	TotalFiltered int          `json:"totalFiltered"`
	TotalPages    int          `json:"totalPages"`
	Page          int          `json:"page"`
	PageSize      int          `json:"pageSize"`
	RangeStart    int          `json:"rangeStart"`
	RangeEnd      int          `json:"rangeEnd"`
}

func toPageDTO(p directory.Page) PageDTO {
	items := make([]SpartanDTO, len(p.Items))
	for i, s := range p.Items {
		items[i] = toSpartanDTO(s)
	}
	return PageDTO{
		Items:         items,
		TotalFiltered: p.TotalFiltered,
		TotalPages:    p.TotalPages,
		Page:          p.Page,
		PageSize:      p.PageSize,
		RangeStart:    p.RangeStart,
		RangeEnd:      p.RangeEnd,
	}
}

// CountsDTO is the JSON representation of the per-status dataset totals.
type CountsDTO struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
}

func toCountsDTO(c service.Counts) CountsDTO {
	return CountsDTO{
		Total:       c.Total,
		Available:   c.Available,
		Unavailable: c.Unavailable,
	}
}
