package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PassageEmbedding struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ChunkIndex     int               `gorm:"default:0"` // 0-based index for ordering
	Content        string            `gorm:"type:text"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector(768)"` // text-embedding-004 and nomic-embed-text are 768-dim
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt    `gorm:"index"`
}

func (PassageEmbedding) TableName() string {
	return "passage_embeddings"
}
