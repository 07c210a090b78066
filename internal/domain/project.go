package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ProjectStatus represents where a project is in its writing lifecycle.
type ProjectStatus string

// Possible project status values
const (
	ProjectStatusDraft      ProjectStatus = "Draft"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// MaxProjectTitleLength is the longest title, in characters, a project may carry.
const MaxProjectTitleLength = 200

// Common validation errors for Project
var (
	ErrEmptyProjectID       = errors.New("project ID cannot be empty")
	ErrEmptyProjectUserID   = errors.New("project user ID cannot be empty")
	ErrEmptyProjectTitle    = errors.New("project title cannot be empty")
	ErrProjectTitleTooLong  = errors.New("project title is too long")
	ErrEmptyProjectTone     = errors.New("project tone cannot be empty")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrNegativeProjectWords = errors.New("project word count cannot be negative")
	ErrWordCountOutOfSync   = errors.New("project word count does not match content")
)

// Project is a piece of content a user is writing for a platform, together
// with the generated or edited text and its word count.
type Project struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Title     string        `json:"title"`
	Platform  string        `json:"platform"`
	Tone      string        `json:"tone"`
	Content   string        `json:"content"`
	Status    ProjectStatus `json:"status"`
	Words     int           `json:"words"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewProject creates a draft project with no content.
// Returns an error if validation fails.
func NewProject(userID uuid.UUID, title, platform, tone string) (*Project, error) {
	now := time.Now().UTC()
	project := &Project{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Platform:  strings.TrimSpace(platform),
		Tone:      strings.TrimSpace(tone),
		Status:    ProjectStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProjectID
	}

	if p.UserID == uuid.Nil {
		return ErrEmptyProjectUserID
	}

	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyProjectTitle
	}

	if utf8.RuneCountInString(p.Title) > MaxProjectTitleLength {
		return ErrProjectTitleTooLong
	}

	if !IsKnownPlatform(p.Platform) {
		return ErrUnknownPlatform
	}

	if strings.TrimSpace(p.Tone) == "" {
		return ErrEmptyProjectTone
	}

	if !isValidProjectStatus(p.Status) {
		return ErrInvalidProjectStatus
	}

	if p.Words < 0 {
		return ErrNegativeProjectWords
	}

	if p.Words != CountWords(p.Content) {
		return ErrWordCountOutOfSync
	}

	return nil
}

// SetContent replaces the project's content and recounts its words.
func (p *Project) SetContent(content string) {
	p.Content = content
	p.Words = CountWords(content)
	p.UpdatedAt = time.Now().UTC()
}

// Rename changes the project title.
func (p *Project) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyProjectTitle
	}
	if utf8.RuneCountInString(title) > MaxProjectTitleLength {
		return ErrProjectTitleTooLong
	}
	p.Title = title
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateStatus updates the project's status and the UpdatedAt timestamp.
func (p *Project) UpdateStatus(status ProjectStatus) error {
	if !isValidProjectStatus(status) {
		return ErrInvalidProjectStatus
	}

	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ParseProjectStatus converts a client-supplied status string.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(s)
	if !isValidProjectStatus(status) {
		return "", ErrInvalidProjectStatus
	}
	return status, nil
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

func isValidProjectStatus(status ProjectStatus) bool {
	switch status {
	case ProjectStatusDraft, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}
