package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TeacherModel struct {
	TeacherID         uuid.UUID      `json:"teacher_id"          gorm:"column:teacher_id;type:uuid;primaryKey"`
	TeacherName       string         `json:"teacher_name"        gorm:"column:teacher_name;type:varchar(120);not null"`
	TeacherEmail      *string        `json:"teacher_email"       gorm:"column:teacher_email;type:varchar(160);uniqueIndex"`
	TeacherSubjectIDs pq.StringArray `json:"teacher_subject_ids" gorm:"column:teacher_subject_ids;type:text[]"`

	TeacherCreatedAt time.Time `json:"teacher_created_at" gorm:"column:teacher_created_at;not null;autoCreateTime"`
	TeacherUpdatedAt time.Time `json:"teacher_updated_at" gorm:"column:teacher_updated_at;not null;autoUpdateTime"`
}

func (TeacherModel) TableName() string { return "teachers" }

// TeacherClassModel is one row of the teacher <-> class association.
// A single row serves both directions: the teacher's classes and the class's teachers.
type TeacherClassModel struct {
	TeacherClassTeacherID uuid.UUID `json:"teacher_class_teacher_id" gorm:"column:teacher_class_teacher_id;type:uuid;primaryKey"`
	TeacherClassClassID   uuid.UUID `json:"teacher_class_class_id"   gorm:"column:teacher_class_class_id;type:uuid;primaryKey;index"`
	TeacherClassCreatedAt time.Time `json:"teacher_class_created_at" gorm:"column:teacher_class_created_at;not null;autoCreateTime"`

	Teacher TeacherModel `json:"-" gorm:"foreignKey:TeacherClassTeacherID;references:TeacherID;constraint:OnDelete:CASCADE"`
	Class   ClassModel   `json:"-" gorm:"foreignKey:TeacherClassClassID;references:ClassID;constraint:OnDelete:CASCADE"`
}

func (TeacherClassModel) TableName() string { return "teacher_classes" }
