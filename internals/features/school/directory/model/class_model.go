package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ClassModel merepresentasikan tabel `classes`
type ClassModel struct {
	ClassID         uuid.UUID      `json:"class_id"          gorm:"column:class_id;type:uuid;primaryKey"`
	ClassName       string         `json:"class_name"        gorm:"column:class_name;type:varchar(120);not null"`
	ClassGradeLevel *string        `json:"class_grade_level" gorm:"column:class_grade_level;type:varchar(40)"`
	ClassSubjectIDs pq.StringArray `json:"class_subject_ids" gorm:"column:class_subject_ids;type:text[]"`

	ClassCreatedAt time.Time `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt time.Time `json:"class_updated_at" gorm:"column:class_updated_at;not null;autoUpdateTime"`
}

func (ClassModel) TableName() string { return "classes" }
