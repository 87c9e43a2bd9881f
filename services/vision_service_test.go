package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseEstimates(t *testing.T) {
	text := "```json\n[{\"name\":\"Phở bò\",\"weight\":350,\"calories\":450,\"protein\":25.5,\"fat\":12.3,\"carbs\":55.1}]\n```"
	got, err := parseEstimates(text)
	if err != nil {
		t.Fatalf("parseEstimates: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("estimates = %d, want 1", len(got))
	}
	e := got[0]
	if e.Name != "Phở bò" || e.WeightGrams != 350 || e.Calories != 450 || e.ProteinGrams != 25.5 {
		t.Errorf("estimate = %+v", e)
	}
}

func TestParseEstimatesWithSurroundingProse(t *testing.T) {
	text := "Here is the analysis:\n[{\"name\":\"Rice\",\"weight\":150,\"calories\":195,\"protein\":4,\"fat\":0.4,\"carbs\":44}]\nEnjoy!"
	got, err := parseEstimates(text)
	if err != nil {
		t.Fatalf("parseEstimates: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Rice" {
		t.Errorf("estimates = %+v", got)
	}
}

func TestParseEstimatesRejectsGarbage(t *testing.T) {
	for _, text := range []string{"", "not json at all", "[]", "{\"name\":\"obj not array\"}"} {
		if _, err := parseEstimates(text); err == nil {
			t.Errorf("parseEstimates(%q) should fail", text)
		}
	}
}

func TestSplitDataURI(t *testing.T) {
	mimeType, data, err := splitDataURI("data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("splitDataURI: %v", err)
	}
	if mimeType != "image/png" || data != "AAAA" {
		t.Errorf("got %q %q", mimeType, data)
	}

	for _, bad := range []string{"", "AAAA", "http://example.com/x.png", "data:image/png;base64,"} {
		if _, _, err := splitDataURI(bad); err == nil {
			t.Errorf("splitDataURI(%q) should fail", bad)
		}
	}
}

func TestAnalyzeImageParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[{\"name\":\"Beef\",\"weight\":80,\"calories\":200,\"protein\":20,\"fat\":12,\"carbs\":0}]"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewGeminiService("test-key")
	svc.baseURL = srv.URL

	got, err := svc.AnalyzeImage(context.Background(), "data:image/jpeg;base64,AAAA")
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Beef" || got[0].Calories != 200 {
		t.Errorf("estimates = %+v", got)
	}
}

func TestAnalyzeImageCollapsesFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"no candidates", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}},
		{"unparseable text", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry, no idea"}]}}]}`))
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(c.handler)
			defer srv.Close()

			svc := NewGeminiService("test-key")
			svc.baseURL = srv.URL

			if _, err := svc.AnalyzeImage(context.Background(), "data:image/jpeg;base64,AAAA"); !errors.Is(err, ErrAnalysisFailed) {
				t.Errorf("err = %v, want ErrAnalysisFailed", err)
			}
		})
	}
}
