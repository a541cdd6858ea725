package mapper

import (
	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	e := &entity.Document{
		Id:         d.Id,
		Filename:   d.Filename,
		Title:      d.Title,
		ChunkCount: d.ChunkCount,
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
	}
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		e.DeletedAt = &t
	}
	return e
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:         d.Id,
		Filename:   d.Filename,
		Title:      d.Title,
		ChunkCount: d.ChunkCount,
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
	}
}
