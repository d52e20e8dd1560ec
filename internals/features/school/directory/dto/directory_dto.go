package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"schoolku_backend/internals/features/school/directory/model"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

/* ===================== Class ===================== */

type CreateClassRequest struct {
	ClassName       string   `json:"class_name"        validate:"required,max=120"`
	ClassGradeLevel *string  `json:"class_grade_level" validate:"omitempty,max=40"`
	ClassSubjectIDs []string `json:"class_subject_ids" validate:"omitempty,dive,uuid"`
}

func (r CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		ClassID:         uuid.New(),
		ClassName:       strings.TrimSpace(r.ClassName),
		ClassGradeLevel: trimPtr(r.ClassGradeLevel),
		ClassSubjectIDs: pq.StringArray(r.ClassSubjectIDs),
	}
}

type ClassResponse struct {
	ClassID         uuid.UUID `json:"class_id"`
	ClassName       string    `json:"class_name"`
	ClassGradeLevel *string   `json:"class_grade_level,omitempty"`
	ClassSubjectIDs []string  `json:"class_subject_ids"`
	ClassTeacherIDs []string  `json:"class_teacher_ids"`
	ClassCreatedAt  time.Time `json:"class_created_at"`
}

func FromClass(m model.ClassModel, teacherIDs []uuid.UUID) ClassResponse {
	subjects := []string(m.ClassSubjectIDs)
	if subjects == nil {
		subjects = []string{}
	}
	return ClassResponse{
		ClassID:         m.ClassID,
		ClassName:       m.ClassName,
		ClassGradeLevel: m.ClassGradeLevel,
		ClassSubjectIDs: subjects,
		ClassTeacherIDs: uuidStrings(teacherIDs),
		ClassCreatedAt:  m.ClassCreatedAt,
	}
}

/* ===================== Teacher ===================== */

type CreateTeacherRequest struct {
	TeacherName       string   `json:"teacher_name"        validate:"required,max=120"`
	TeacherEmail      *string  `json:"teacher_email"       validate:"omitempty,email"`
	TeacherSubjectIDs []string `json:"teacher_subject_ids" validate:"omitempty,dive,uuid"`
}

func (r CreateTeacherRequest) ToModel() *model.TeacherModel {
	email := trimPtr(r.TeacherEmail)
	if email != nil {
		lower := strings.ToLower(*email)
		email = &lower
	}
	return &model.TeacherModel{
		TeacherID:         uuid.New(),
		TeacherName:       strings.TrimSpace(r.TeacherName),
		TeacherEmail:      email,
		TeacherSubjectIDs: pq.StringArray(r.TeacherSubjectIDs),
	}
}

type TeacherResponse struct {
	TeacherID         uuid.UUID `json:"teacher_id"`
	TeacherName       string    `json:"teacher_name"`
	TeacherEmail      *string   `json:"teacher_email,omitempty"`
	TeacherSubjectIDs []string  `json:"teacher_subject_ids"`
	TeacherClassIDs   []string  `json:"teacher_class_ids"`
	TeacherCreatedAt  time.Time `json:"teacher_created_at"`
}

func FromTeacher(m model.TeacherModel, classIDs []uuid.UUID) TeacherResponse {
	subjects := []string(m.TeacherSubjectIDs)
	if subjects == nil {
		subjects = []string{}
	}
	return TeacherResponse{
		TeacherID:         m.TeacherID,
		TeacherName:       m.TeacherName,
		TeacherEmail:      m.TeacherEmail,
		TeacherSubjectIDs: subjects,
		TeacherClassIDs:   uuidStrings(classIDs),
		TeacherCreatedAt:  m.TeacherCreatedAt,
	}
}

/* ===================== Subject ===================== */

type CreateSubjectRequest struct {
	SubjectName string  `json:"subject_name" validate:"required,max=120"`
	SubjectCode *string `json:"subject_code" validate:"omitempty,max=40"`
}

func (r CreateSubjectRequest) ToModel() *model.SubjectModel {
	return &model.SubjectModel{
		SubjectID:   uuid.New(),
		SubjectName: strings.TrimSpace(r.SubjectName),
		SubjectCode: trimPtr(r.SubjectCode),
	}
}

type SubjectResponse struct {
	SubjectID        uuid.UUID `json:"subject_id"`
	SubjectName      string    `json:"subject_name"`
	SubjectCode      *string   `json:"subject_code,omitempty"`
	SubjectCreatedAt time.Time `json:"subject_created_at"`
}

func FromSubject(m model.SubjectModel) SubjectResponse {
	return SubjectResponse{
		SubjectID:        m.SubjectID,
		SubjectName:      m.SubjectName,
		SubjectCode:      m.SubjectCode,
		SubjectCreatedAt: m.SubjectCreatedAt,
	}
}
