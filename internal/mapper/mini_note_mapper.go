package mapper

import (
	"syncpad-be/internal/entity"
	"syncpad-be/internal/model"
)

type MiniNoteMapper struct{}

func NewMiniNoteMapper() *MiniNoteMapper {
	return &MiniNoteMapper{}
}

func (m *MiniNoteMapper) ToEntity(n *model.MiniNote) *entity.MiniNote {
	if n == nil {
		return nil
	}
	return &entity.MiniNote{
		Id:          n.Id,
		SenderId:    n.SenderId,
		RecipientId: n.RecipientId,
		Content:     n.Content,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

func (m *MiniNoteMapper) ToModel(n *entity.MiniNote) *model.MiniNote {
	if n == nil {
		return nil
	}
	return &model.MiniNote{
		Id:          n.Id,
		SenderId:    n.SenderId,
		RecipientId: n.RecipientId,
		Content:     n.Content,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

func (m *MiniNoteMapper) ToEntities(notes []*model.MiniNote) []*entity.MiniNote {
	entities := make([]*entity.MiniNote, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
