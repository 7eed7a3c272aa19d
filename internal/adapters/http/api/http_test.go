package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/boardlens/internal/adapters/http/api"
	filterqueue "github.com/okian/boardlens/internal/adapters/mq/queue"
	"github.com/okian/boardlens/internal/domain/aggregate"
	"github.com/okian/boardlens/internal/domain/catalog"
	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/projection"
	"github.com/okian/boardlens/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	current   filter.State
	submitErr error
	projErr   error
	viewErr   error

	lastCategories filter.State
	lastLimit      int
	lastProjection filter.State
	submitted      []filter.State
}

func (m *mockDependencies) Facets(ctx context.Context) catalog.Facets {
	return catalog.Facets{
		Records:    3,
		Ages:       []int{8, 10},
		Categories: []catalog.CategoryFacet{{Name: "Fantasy", Count: 2, Primary: 2}},
	}
}

func (m *mockDependencies) Filter(ctx context.Context) filter.State {
	return m.current
}

func (m *mockDependencies) Categories(ctx context.Context, f filter.State, limit int) aggregate.Result {
	m.lastCategories = f
	m.lastLimit = limit
	return aggregate.Result{
		Summaries: []aggregate.Summary{{Name: "Fantasy", Count: 2, TopRating: 7.5, Color: "#1f77b4"}},
		Matched:   2,
		Distinct:  1,
	}
}

func (m *mockDependencies) Projection(ctx context.Context, f filter.State) (projection.Result, error) {
	m.lastProjection = f
	if m.projErr != nil {
		return projection.Result{}, m.projErr
	}
	return projection.Result{
		Points:   []projection.Point{{X: 1, Y: 2, Label: "Fantasy"}},
		Labels:   f.Categories,
		Eligible: 1,
	}, nil
}

func (m *mockDependencies) SubmitFilter(ctx context.Context, f filter.State) (filter.Change, error) {
	if m.submitErr != nil {
		return filter.Change{}, m.submitErr
	}
	m.submitted = append(m.submitted, f)
	return filter.NewChange(f), nil
}

func (m *mockDependencies) View(ctx context.Context) (view.View, error) {
	if m.viewErr != nil {
		return view.View{}, m.viewErr
	}
	return view.View{Sequence: 3, Filter: m.current, ProjectionState: view.ProjectionReady}, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 20)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var out map[string]string
	_ = json.NewDecoder(w.Body).Decode(&out)
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{current: filter.New([]int{8, 10}, false, []string{"Fantasy", "Economic"})}
		mux := newMux(deps)

		for _, path := range []string{"/healthz", "/stats", "/facets", "/categories", "/projection", "/filters", "/view"} {
			Convey(fmt.Sprintf("Then GET %s is served", path), func() {
				w := serve(mux, http.MethodGet, path, "")
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		}

		Convey("And unknown paths are not found", func() {
			w := serve(mux, http.MethodGet, "/leaderboard", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And wrong methods are not found", func() {
			w := serve(mux, http.MethodPost, "/facets", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When handling health check request", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			handler.HandleHealth(w, req)

			Convey("Then it should expose the service metrics", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "boardlens_")
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		handler := api.NewStatsHandler(&mockStatsProvider{stats: map[string]interface{}{"records": 42}})

		Convey("When handling stats request", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			handler.HandleStats(w, req)

			Convey("Then it should return stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
				var out map[string]interface{}
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out["records"], ShouldEqual, 42.0)
			})
		})
	})
}

func TestCategoriesHandler_HandleGetCategories(t *testing.T) {
	Convey("Given a categories handler", t, func() {
		deps := &mockDependencies{current: filter.New([]int{8, 10}, false, []string{"Fantasy"})}
		mux := newMux(deps)

		Convey("When no parameters are given", func() {
			w := serve(mux, http.MethodGet, "/categories", "")

			Convey("Then the current filter is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastCategories.Ages, ShouldResemble, []int{8, 10})
				So(deps.lastLimit, ShouldEqual, 0)
			})

			Convey("And the summaries are returned", func() {
				var out aggregate.Result
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out.Summaries, ShouldHaveLength, 1)
				So(out.Summaries[0].Name, ShouldEqual, "Fantasy")
			})
		})

		Convey("When ages and a limit are given", func() {
			w := serve(mux, http.MethodGet, "/categories?age=12&age=8,10&unknown_age=true&limit=5", "")

			Convey("Then they replace the current selection", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastCategories.Ages, ShouldResemble, []int{8, 10, 12})
				So(deps.lastCategories.IncludeUnknownAge, ShouldBeTrue)
				So(deps.lastLimit, ShouldEqual, 5)
			})
		})

		Convey("When the limit exceeds the maximum", func() {
			w := serve(mux, http.MethodGet, "/categories?limit=100", "")

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When an age is not a number", func() {
			w := serve(mux, http.MethodGet, "/categories?age=eight", "")

			Convey("Then it should return 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
			})
		})
	})
}

func TestProjectionHandler_HandleGetProjection(t *testing.T) {
	Convey("Given a projection handler", t, func() {
		deps := &mockDependencies{current: filter.New([]int{8}, false, []string{"Fantasy", "Economic"})}
		mux := newMux(deps)

		Convey("When categories are given in the query", func() {
			w := serve(mux, http.MethodGet, "/projection?category=Economic&category=Wargame", "")

			Convey("Then they keep their order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastProjection.Categories, ShouldResemble, []string{"Economic", "Wargame"})
				So(deps.lastProjection.Ages, ShouldResemble, []int{8})
			})
		})

		Convey("When there is not enough data", func() {
			deps.projErr = fmt.Errorf("1 category: %w", projection.ErrInsufficientData)
			w := serve(mux, http.MethodGet, "/projection", "")

			Convey("Then it should return 422 insufficient_data", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(decodeError(w)["code"], ShouldEqual, "insufficient_data")
			})
		})

		Convey("When the decomposition fails", func() {
			deps.projErr = projection.ErrDecomposition
			w := serve(mux, http.MethodGet, "/projection", "")

			Convey("Then it should return internal server error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestFiltersHandler(t *testing.T) {
	Convey("Given a filters handler", t, func() {
		deps := &mockDependencies{current: filter.New([]int{8}, false, nil)}
		mux := newMux(deps)

		Convey("When reading the filter", func() {
			w := serve(mux, http.MethodGet, "/filters", "")

			Convey("Then the current state is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var out filter.State
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out.Ages, ShouldResemble, []int{8})
			})
		})

		Convey("When submitting a valid filter", func() {
			w := serve(mux, http.MethodPut, "/filters", `{"ages":[10,8],"categories":["Fantasy","Adventure"]}`)

			Convey("Then it is accepted with a change id", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				var out filter.Change
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out.ID, ShouldNotBeEmpty)
				So(deps.submitted, ShouldHaveLength, 1)
				So(deps.submitted[0].Ages, ShouldResemble, []int{8, 10})
			})
		})

		Convey("When the body is invalid", func() {
			cases := map[string]string{
				"malformed JSON": `{"ages":`,
				"unknown field":  `{"ages":[8],"colour":"red"}`,
				"negative age":   `{"ages":[-1]}`,
				"missing ages":   `{"categories":["Fantasy"]}`,
			}
			for name, body := range cases {
				Convey("Then "+name+" is rejected", func() {
					w := serve(mux, http.MethodPut, "/filters", body)
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(deps.submitted, ShouldBeEmpty)
				})
			}
		})

		Convey("When the queue is full", func() {
			deps.submitErr = fmt.Errorf("full: %w", filterqueue.ErrFull)
			w := serve(mux, http.MethodPut, "/filters", `{"ages":[8]}`)

			Convey("Then it should return too many requests status", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(decodeError(w)["code"], ShouldEqual, "backpressure")
			})
		})

		Convey("When the service is not accepting changes", func() {
			deps.submitErr = fmt.Errorf("stopped: %w", filterqueue.ErrStopped)
			w := serve(mux, http.MethodPut, "/filters", `{"ages":[8]}`)

			Convey("Then it should return service unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}

func TestViewHandler_HandleGetView(t *testing.T) {
	Convey("Given a view handler", t, func() {
		deps := &mockDependencies{current: filter.New([]int{8}, false, nil)}
		mux := newMux(deps)

		Convey("When a view exists", func() {
			w := serve(mux, http.MethodGet, "/view", "")

			Convey("Then it is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var out view.View
				So(json.NewDecoder(w.Body).Decode(&out), ShouldBeNil)
				So(out.Sequence, ShouldEqual, uint64(3))
			})
		})

		Convey("When nothing was computed yet", func() {
			deps.viewErr = errors.New("no view computed yet")
			w := serve(mux, http.MethodGet, "/view", "")

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given an upstream error", t, func() {
		cause := errors.New("boom")

		Convey("Then Wrap keeps it reachable", func() {
			err := api.Wrap("api.op", cause)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: boom")
			So(api.Wrap("api.op", nil), ShouldBeNil)
		})

		Convey("And WrapKind classifies it", func() {
			err := api.WrapKind("api.op", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
		})

		Convey("And NewKind needs no cause", func() {
			So(errors.Is(api.NewKind("api.op", api.ErrBackpressure), api.ErrBackpressure), ShouldBeTrue)
		})
	})
}
