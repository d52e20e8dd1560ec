package routes

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"schoolku_backend/internals/databases/memdb"
	dirRepo "schoolku_backend/internals/features/school/directory/repository"
	ttRepo "schoolku_backend/internals/features/school/timetables/repository"
	ttService "schoolku_backend/internals/features/school/timetables/service"
)

const testSecret = "test-secret"

type body = map[string]any

type APISuite struct {
	suite.Suite
	app *fiber.App
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	mem := memdb.New()
	s.app = NewApp()
	SetupRoutes(s.app, Deps{
		JWTSecret:  testSecret,
		Directory:  dirRepo.NewMemoryStore(mem),
		Timetables: ttService.New(ttRepo.NewMemoryStore(mem), nil, 7),
	})
}

func sign(secret string, claims jwt.MapClaims) string {
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return tok
}

func tokenFor(role string) string {
	return sign(testSecret, jwt.MapClaims{"id": uuid.NewString(), "role": role})
}

func (s *APISuite) call(method, path, token string, payload any) (int, body) {
	var rd io.Reader
	if payload != nil {
		raw, err := sonic.Marshal(payload)
		s.Require().NoError(err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	out := body{}
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(sonic.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (s *APISuite) admin(method, path string, payload any) (int, body) {
	return s.call(method, path, tokenFor("admin"), payload)
}

func (s *APISuite) createID(path, idKey string, payload any) string {
	code, res := s.admin(http.MethodPost, path, payload)
	s.Require().Equal(http.StatusCreated, code, res)
	return res["data"].(body)[idKey].(string)
}

type fixture struct {
	classA, classB, teacher, subject string
}

func (s *APISuite) seed() fixture {
	return fixture{
		classA:  s.createID("/api/classes", "class_id", body{"class_name": "7A"}),
		classB:  s.createID("/api/classes", "class_id", body{"class_name": "7B"}),
		teacher: s.createID("/api/teachers", "teacher_id", body{"teacher_name": "Siti Rahma"}),
		subject: s.createID("/api/subjects", "subject_id", body{"subject_name": "Mathematics"}),
	}
}

func timetable(class, day, teacher, subject string, numbers ...int) body {
	periods := make([]body, 0, len(numbers))
	for _, n := range numbers {
		start := time.Date(0, 1, 1, 7, 0, 0, 0, time.UTC).Add(time.Duration(n-1) * 45 * time.Minute)
		periods = append(periods, body{
			"periodNumber": n,
			"startTime":    start.Format("15:04"),
			"endTime":      start.Add(40 * time.Minute).Format("15:04"),
			"subject":      subject,
			"teacher":      teacher,
		})
	}
	return body{"class": class, "day": day, "academicYear": "2024/2025", "periods": periods}
}

func (s *APISuite) TestHealth() {
	code, res := s.call(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, code)
	s.Equal("memory", res["database"])
}

func (s *APISuite) TestAuth() {
	code, res := s.call(http.MethodGet, "/api/timetables", "", nil)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("UNAUTHORIZED", res["error_code"])

	bad := sign("other-secret", jwt.MapClaims{"id": uuid.NewString(), "role": "admin"})
	code, _ = s.call(http.MethodGet, "/api/timetables", bad, nil)
	s.Equal(http.StatusUnauthorized, code)

	noRole := sign(testSecret, jwt.MapClaims{"id": uuid.NewString()})
	code, _ = s.call(http.MethodGet, "/api/timetables", noRole, nil)
	s.Equal(http.StatusUnauthorized, code)

	expired := sign(testSecret, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Minute).Unix()})
	code, _ = s.call(http.MethodGet, "/api/timetables", expired, nil)
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.call(http.MethodGet, "/api/timetables", tokenFor("janitor"), nil)
	s.Equal(http.StatusForbidden, code)

	rolesArray := sign(testSecret, jwt.MapClaims{"roles": []string{"Parent"}})
	code, _ = s.call(http.MethodGet, "/api/timetables", rolesArray, nil)
	s.Equal(http.StatusOK, code)
}

func (s *APISuite) TestWritesAreAdminOnly() {
	f := s.seed()
	for _, role := range []string{"teacher", "student", "parent"} {
		code, res := s.call(http.MethodPost, "/api/timetables", tokenFor(role),
			timetable(f.classA, "Monday", f.teacher, f.subject, 1))
		s.Equal(http.StatusForbidden, code, role)
		s.Equal("FORBIDDEN", res["error_code"])
	}
	code, _ := s.call(http.MethodPost, "/api/classes", tokenFor("teacher"), body{"class_name": "8A"})
	s.Equal(http.StatusForbidden, code)

	// reads stay open to the same roles
	code, _ = s.call(http.MethodGet, "/api/classes", tokenFor("student"), nil)
	s.Equal(http.StatusOK, code)
}

func (s *APISuite) TestCreateTimetableFlow() {
	f := s.seed()

	code, res := s.admin(http.MethodPost, "/api/timetables", timetable(f.classA, "monday", f.teacher, f.subject, 1, 2))
	s.Require().Equal(http.StatusCreated, code, res)
	data := res["data"].(body)
	s.Equal("Monday", data["day"])
	s.Equal(f.classA, data["class"])
	s.Len(data["periods"], 2)
	id := data["id"].(string)

	code, res = s.admin(http.MethodPost, "/api/timetables", timetable(f.classA, "Monday", f.teacher, f.subject, 5))
	s.Equal(http.StatusBadRequest, code)
	s.Equal("DUPLICATE_ENTRY", res["error_code"])

	code, res = s.admin(http.MethodPost, "/api/timetables", timetable(f.classB, "Monday", f.teacher, f.subject, 2))
	s.Equal(http.StatusBadRequest, code)
	s.Equal("CONFLICT", res["error_code"])

	code, _ = s.admin(http.MethodPost, "/api/timetables", timetable(f.classB, "Monday", f.teacher, f.subject, 3))
	s.Equal(http.StatusCreated, code)

	// the teacher is now linked to both classes
	code, res = s.call(http.MethodGet, "/api/teachers/"+f.teacher, tokenFor("student"), nil)
	s.Require().Equal(http.StatusOK, code)
	s.ElementsMatch([]any{f.classA, f.classB}, res["data"].(body)["teacher_class_ids"])

	code, res = s.call(http.MethodGet, "/api/timetables/"+id, tokenFor("parent"), nil)
	s.Equal(http.StatusOK, code)
	s.Equal(id, res["data"].(body)["id"])

	q := url.Values{"teacher_id": {f.teacher}, "academic_year": {"2024/2025"}}
	code, res = s.call(http.MethodGet, "/api/timetables?"+q.Encode(), tokenFor("teacher"), nil)
	s.Equal(http.StatusOK, code)
	s.EqualValues(2, res["pagination"].(body)["total"])

	q = url.Values{"day": {"Monday"}, "academic_year": {"2024/2025"}}
	code, res = s.call(http.MethodGet, "/api/timetables/load?"+q.Encode(), tokenFor("admin"), nil)
	s.Require().Equal(http.StatusOK, code)
	teachers := res["data"].(body)["teachers"].([]any)
	s.Require().Len(teachers, 1)
	s.EqualValues(3, teachers[0].(body)["periods"])
	s.EqualValues(4, teachers[0].(body)["remaining"])
}

func (s *APISuite) TestCreateTimetableErrors() {
	f := s.seed()

	code, res := s.admin(http.MethodPost, "/api/timetables", timetable(uuid.NewString(), "Monday", f.teacher, f.subject, 1))
	s.Equal(http.StatusBadRequest, code)
	s.Equal("NOT_FOUND", res["error_code"])

	code, res = s.admin(http.MethodPost, "/api/timetables", timetable(f.classA, "Monday", uuid.NewString(), f.subject, 1))
	s.Equal(http.StatusBadRequest, code)
	s.Equal("NOT_FOUND", res["error_code"])

	code, res = s.admin(http.MethodPost, "/api/timetables", body{"class": f.classA, "day": "Monday", "academicYear": "2024/2025"})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("VALIDATION_ERROR", res["error_code"])
	s.Contains(res["errors"], "periods")

	code, res = s.admin(http.MethodPost, "/api/timetables", timetable(f.classA, "Saturday", f.teacher, f.subject, 1))
	s.Equal(http.StatusBadRequest, code)
	s.Equal("VALIDATION_ERROR", res["error_code"])
	s.Contains(res["errors"], "day")

	code, res = s.admin(http.MethodPost, "/api/timetables", timetable(f.classA, "Monday", f.teacher, f.subject, 1, 2, 3, 4, 5, 6, 7, 8))
	s.Equal(http.StatusBadRequest, code)
	s.Equal("CAPACITY_EXCEEDED", res["error_code"])
}

func (s *APISuite) TestListWithOutOfRangePage() {
	f := s.seed()
	code, _ := s.admin(http.MethodPost, "/api/timetables", timetable(f.classA, "Monday", f.teacher, f.subject, 1))
	s.Require().Equal(http.StatusCreated, code)

	for _, path := range []string{
		"/api/timetables?page=500000000000000000",
		"/api/timetables?page=500000000000000000&per_page=200",
		"/api/classes?page=500000000000000000",
	} {
		code, res := s.call(http.MethodGet, path, tokenFor("student"), nil)
		s.Require().Equal(http.StatusOK, code, path)
		s.Empty(res["data"], path)
		s.False(res["pagination"].(body)["has_next"].(bool), path)
	}
}

func (s *APISuite) TestTimetableByIDRoutes() {
	f := s.seed()

	code, res := s.call(http.MethodGet, "/api/timetables/"+uuid.NewString(), tokenFor("student"), nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("NOT_FOUND", res["error_code"])

	code, _ = s.call(http.MethodGet, "/api/timetables/not-a-uuid", tokenFor("student"), nil)
	s.Equal(http.StatusBadRequest, code)

	_, res = s.admin(http.MethodPost, "/api/timetables", timetable(f.classA, "Tuesday", f.teacher, f.subject, 1))
	id := res["data"].(body)["id"].(string)

	code, res = s.admin(http.MethodPatch, "/api/timetables/"+id, body{"periods": timetable(f.classA, "Tuesday", f.teacher, f.subject, 2, 3)["periods"]})
	s.Require().Equal(http.StatusOK, code, res)
	s.Len(res["data"].(body)["periods"], 2)

	code, res = s.call(http.MethodGet, "/api/classes/"+f.classA+"/timetables", tokenFor("student"), nil)
	s.Equal(http.StatusOK, code)
	s.Len(res["data"], 1)

	code, _ = s.call(http.MethodGet, "/api/classes/"+uuid.NewString()+"/timetables", tokenFor("student"), nil)
	s.Equal(http.StatusNotFound, code)

	code, _ = s.admin(http.MethodDelete, "/api/timetables/"+id, nil)
	s.Equal(http.StatusOK, code)

	code, _ = s.admin(http.MethodDelete, "/api/timetables/"+id, nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *APISuite) TestDirectoryDuplicateAndNotFound() {
	s.createID("/api/subjects", "subject_id", body{"subject_name": "Mathematics", "subject_code": "MTK"})
	code, res := s.admin(http.MethodPost, "/api/subjects", body{"subject_name": "Math", "subject_code": "mtk"})
	s.Equal(http.StatusConflict, code)
	s.Equal("DUPLICATE_ENTRY", res["error_code"])

	code, _ = s.call(http.MethodGet, "/api/subjects/"+uuid.NewString(), tokenFor("student"), nil)
	s.Equal(http.StatusNotFound, code)

	code, res = s.admin(http.MethodPost, "/api/teachers", body{"teacher_name": "X", "teacher_email": "nope"})
	s.Equal(http.StatusBadRequest, code)
	s.Contains(res["errors"], "teacher_email")
}
