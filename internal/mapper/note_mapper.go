package mapper

import (
	"time"

	"syncpad-be/internal/entity"
	"syncpad-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	token := ""
	if n.PublicAccessToken != nil {
		token = *n.PublicAccessToken
	}

	return &entity.Note{
		Id:                n.Id,
		UserId:            n.UserId,
		Title:             n.Title,
		Content:           n.Content,
		Encrypted:         n.Encrypted,
		Passcode:          n.Passcode,
		IsPublic:          n.IsPublic,
		PublicAccessToken: token,
		EditPermissions:   n.EditPermissions,
		DisableEdit:       n.DisableEdit,
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	// NULL keeps the unique index happy: empty strings would collide
	// across every unshared note.
	var token *string
	if n.PublicAccessToken != "" {
		t := n.PublicAccessToken
		token = &t
	}

	return &model.Note{
		Id:                n.Id,
		UserId:            n.UserId,
		Title:             n.Title,
		Content:           n.Content,
		Encrypted:         n.Encrypted,
		Passcode:          n.Passcode,
		IsPublic:          n.IsPublic,
		PublicAccessToken: token,
		EditPermissions:   n.EditPermissions,
		DisableEdit:       n.DisableEdit,
		CreatedAt:         n.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
