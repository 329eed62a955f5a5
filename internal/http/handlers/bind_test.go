package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/fittrack/internal/domain/workout"
	"github.com/geocoder89/fittrack/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type bindErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			JSON   string                `json:"json"`
			Field  string                `json:"field"`
			Fields []handlers.FieldError `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func workoutBindRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/workouts", func(ctx *gin.Context) {
		var req workout.CreateRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusCreated)
	})
	return r
}

// postWorkout sends body and decodes the 400 it expects back.
func postWorkout(t *testing.T, r *gin.Engine, body string) bindErrorResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	var resp bindErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v body=%s", err, w.Body.String())
	}
	if resp.Error.Code != "invalid_request" {
		t.Fatalf("unexpected code: %s", resp.Error.Code)
	}
	return resp
}

func TestBindJSON_FieldErrors(t *testing.T) {
	r := workoutBindRouter()

	tests := []struct {
		name      string
		body      string
		wantRules map[string]string
		wantJSON  string
	}{
		{
			name: "missing and malformed fields",
			body: `{"exerciseName":"Run","date":"15-06-2024"}`,
			wantRules: map[string]string{
				"exerciseType": "required",
				"duration":     "required",
				"date":         "datetime",
			},
		},
		{
			name:      "negative counts",
			body:      `{"exerciseName":"Squat","exerciseType":"strength","sets":-1,"duration":-5,"date":"2024-06-15"}`,
			wantRules: map[string]string{"sets": "min", "duration": "min"},
		},
		{
			name:      "string where a number belongs",
			body:      `{"exerciseName":"Run","exerciseType":"cardio","duration":"ten","date":"2024-06-15"}`,
			wantRules: map[string]string{"duration": "type"},
			wantJSON:  "invalid_json_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postWorkout(t, r, tt.body)

			if resp.Error.Details.JSON != tt.wantJSON {
				t.Fatalf("details.json = %q, want %q", resp.Error.Details.JSON, tt.wantJSON)
			}

			found := map[string]handlers.FieldError{}
			for _, fe := range resp.Error.Details.Fields {
				found[fe.Field] = fe
			}
			for field, rule := range tt.wantRules {
				fe, ok := found[field]
				if !ok {
					t.Fatalf("no error for %q in %+v", field, resp.Error.Details.Fields)
				}
				if fe.Rule != rule {
					t.Fatalf("%q: rule %q, want %q", field, fe.Rule, rule)
				}
				if fe.Message == "" {
					t.Fatalf("%q: empty message", field)
				}
			}
		})
	}
}

func TestBindJSON_MalformedSyntax(t *testing.T) {
	resp := postWorkout(t, workoutBindRouter(), `{"exerciseName":`)
	if resp.Error.Details.JSON != "invalid_json_syntax" {
		t.Fatalf("expected invalid_json_syntax, got %q", resp.Error.Details.JSON)
	}
}

func TestBindJSON_EmptyAndOversizedBodies(t *testing.T) {
	r := gin.New()
	r.POST("/workouts", func(ctx *gin.Context) {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, 64)

		var req workout.CreateRequest
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty body: got status %d, want 400", w.Code)
	}
	var resp bindErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Details.JSON != "empty_body" {
		t.Fatalf("expected empty_body, got %q", resp.Error.Details.JSON)
	}

	big := `{"exerciseName":"` + strings.Repeat("x", 200) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/workouts", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body: got status %d, want 413 (%s)", w.Code, w.Body.String())
	}
}

func TestBindQuery_UsesQueryNames(t *testing.T) {
	type query struct {
		Limit int `form:"limit" binding:"omitempty,max=100"`
	}

	r := gin.New()
	r.GET("/foods", func(ctx *gin.Context) {
		var q query
		if !handlers.BindQuery(ctx, &q) {
			return
		}
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/foods?limit=500", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	var resp bindErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Error.Details.Fields) != 1 || resp.Error.Details.Fields[0].Field != "limit" {
		t.Fatalf("expected limit field error, got %+v", resp.Error.Details.Fields)
	}
}
