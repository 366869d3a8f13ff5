package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/lineup/internal/adapters/http/api"
	service "github.com/okian/lineup/internal/app"
	"github.com/okian/lineup/internal/domain/state"
	"github.com/okian/lineup/internal/domain/types"
	"github.com/okian/lineup/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

// brokenDeps fails every call with an unclassified error.
type brokenDeps struct{}

var errBroken = errors.New("disk on fire")

func (brokenDeps) Create(context.Context) (api.Session, error)       { return api.Session{}, errBroken }
func (brokenDeps) Get(context.Context, string) (api.Session, error)  { return api.Session{}, errBroken }
func (brokenDeps) Delete(context.Context, string) error              { return errBroken }
func (brokenDeps) ShareText(context.Context, string) (string, error) { return "", errBroken }
func (brokenDeps) GetStats(context.Context) types.Stats              { return types.Stats{} }
func (brokenDeps) Dispatch(context.Context, string, string, state.Command) (api.Session, error) {
	return api.Session{}, errBroken
}

func (brokenDeps) ImportRoster(context.Context, string, string, io.Reader) (api.Session, error) {
	return api.Session{}, errBroken
}

func newMux(deps api.Dependencies, stats api.StatsProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stats).Register(context.Background(), mux)
	return mux
}

func do(mux http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeSession(w *httptest.ResponseRecorder) api.Session {
	var sess api.Session
	So(json.Unmarshal(w.Body.Bytes(), &sess), ShouldBeNil)
	return sess
}

func errorCode(w *httptest.ResponseRecorder) string {
	var body struct {
		Code string `json:"code"`
	}
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body.Code
}

const addKim = `{"type":"add_player","player":{"id":"p1","name":"Kim","main_pos":"ST","sub_pos":"","skill_level":"High","is_mercenary":false,"is_attending":false,"available_quarters":[false,false,false,false]}}`

func TestServer_Sessions(t *testing.T) {
	Convey("Given a server over a started service", t, func() {
		svc := service.New(service.WithShuffleSeed(3))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc, svc)

		Convey("When a session is created", func() {
			w := do(mux, http.MethodPost, "/sessions", "")
			So(w.Code, ShouldEqual, http.StatusCreated)
			sess := decodeSession(w)

			Convey("Then it can be fetched at its location", func() {
				So(w.Header().Get("Location"), ShouldEqual, "/sessions/"+sess.ID)
				got := do(mux, http.MethodGet, "/sessions/"+sess.ID, "")
				So(got.Code, ShouldEqual, http.StatusOK)
				So(decodeSession(got).State.Formation, ShouldEqual, sess.State.Formation)
			})

			Convey("And deleting it makes it unknown", func() {
				So(do(mux, http.MethodDelete, "/sessions/"+sess.ID, "").Code, ShouldEqual, http.StatusNoContent)
				got := do(mux, http.MethodGet, "/sessions/"+sess.ID, "")
				So(got.Code, ShouldEqual, http.StatusNotFound)
				So(errorCode(got), ShouldEqual, "not_found")
			})
		})

		Convey("When an unknown session is addressed", func() {
			Convey("Then every route answers 404", func() {
				So(do(mux, http.MethodGet, "/sessions/nope", "").Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, http.MethodGet, "/sessions/nope/share", "").Code, ShouldEqual, http.StatusNotFound)
				So(do(mux, http.MethodPost, "/sessions/nope/commands", addKim).Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestServer_Commands(t *testing.T) {
	Convey("Given a session", t, func() {
		svc := service.New(service.WithShuffleSeed(3))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc, svc)
		id := decodeSession(do(mux, http.MethodPost, "/sessions", "")).ID
		path := "/sessions/" + id + "/commands"

		Convey("When a player is added", func() {
			w := do(mux, http.MethodPost, path, addKim)

			Convey("Then the new state is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				sess := decodeSession(w)
				So(sess.State.Players, ShouldHaveLength, 1)
				So(sess.State.Players[0].Name, ShouldEqual, "Kim")
			})

			Convey("And a rejected command maps to 400", func() {
				again := do(mux, http.MethodPost, path, addKim)
				So(again.Code, ShouldEqual, http.StatusBadRequest)
				So(errorCode(again), ShouldEqual, "bad_request")
			})
		})

		Convey("When the same key is sent twice", func() {
			first := do(mux, http.MethodPost, path, `{"type":"set_formation","formation":"3-5-2"}`, api.IdempotencyHeader, "k1")
			second := do(mux, http.MethodPost, path, `{"type":"set_formation","formation":"3-5-2"}`, api.IdempotencyHeader, "k1")

			Convey("Then the replay is flagged", func() {
				So(first.Code, ShouldEqual, http.StatusOK)
				So(decodeSession(first).Duplicate, ShouldBeFalse)
				So(second.Code, ShouldEqual, http.StatusOK)
				So(decodeSession(second).Duplicate, ShouldBeTrue)
				So(svc.GetStats(context.Background()).Duplicates, ShouldEqual, 1)
			})
		})

		Convey("When lineups are generated for one attendee", func() {
			do(mux, http.MethodPost, path, addKim)
			do(mux, http.MethodPost, path, `{"type":"toggle_attendance","id":"p1"}`)
			w := do(mux, http.MethodPost, path, `{"type":"generate_lineups"}`)

			Convey("Then the report counts the empty slots", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				sess := decodeSession(w)
				So(sess.Generation, ShouldNotBeNil)
				So(sess.Generation.UnfilledSlots, ShouldEqual, 40)
				So(sess.State.Lineups, ShouldHaveLength, 4)
			})

			Convey("And the share text renders every quarter", func() {
				share := do(mux, http.MethodGet, "/sessions/"+id+"/share", "")
				So(share.Code, ShouldEqual, http.StatusOK)
				So(share.Header().Get("Content-Type"), ShouldStartWith, "text/plain")
				So(share.Body.String(), ShouldStartWith, "[4-3-3 라인업]")
				So(share.Body.String(), ShouldContainSubstring, "--- 4Q ---")
			})
		})

		Convey("When the body is malformed", func() {
			cases := []struct {
				name string
				body string
			}{
				{"not json", `{`},
				{"unknown field", `{"type":"generate_lineups","bogus":1}`},
				{"trailing data", `{"type":"generate_lineups"} {}`},
				{"missing type", `{}`},
				{"unknown type", `{"type":"launch"}`},
				{"missing field", `{"type":"toggle_quarter","id":"p1"}`},
				{"bad elite quarter", `{"type":"set_elite_quarter","elite_quarter":9}`},
			}
			for _, tc := range cases {
				Convey("Then "+tc.name+" is a 400", func() {
					w := do(mux, http.MethodPost, path, tc.body)
					So(w.Code, ShouldEqual, http.StatusBadRequest)
				})
			}
		})

		Convey("When a state without an elite quarter is loaded", func() {
			do(mux, http.MethodPost, path, `{"type":"set_elite_quarter","elite_quarter":1}`)
			w := do(mux, http.MethodPost, path, `{"type":"load_state","state":{"players":[],"formation":"4-4-2","quarter_lineups":[],"current_step":0,"selected_quarter":0}}`)

			Convey("Then no quarter is elite", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"elite_quarter":null`)
				So(string(decodeSession(w).State.Formation), ShouldEqual, "4-4-2")
			})
		})

		Convey("When the elite quarter is cleared with null", func() {
			do(mux, http.MethodPost, path, `{"type":"set_elite_quarter","elite_quarter":2}`)
			w := do(mux, http.MethodPost, path, `{"type":"set_elite_quarter","elite_quarter":null}`)

			Convey("Then no quarter is elite", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"elite_quarter":null`)
			})
		})
	})
}

func TestServer_Roster(t *testing.T) {
	Convey("Given a session", t, func() {
		svc := service.New(service.WithShuffleSeed(3))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc, svc)
		id := decodeSession(do(mux, http.MethodPost, "/sessions", "")).ID

		Convey("When a roster CSV is uploaded", func() {
			body := "이름,등번호,주포지션 세부\nKim,10,\"ST, CF\"\nLee,1,GK\n"
			w := do(mux, http.MethodPost, "/sessions/"+id+"/roster", body, "Content-Type", "text/csv")

			Convey("Then the roster is replaced", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				sess := decodeSession(w)
				So(sess.State.Players, ShouldHaveLength, 2)
				So(sess.State.Players[1].Name, ShouldEqual, "Lee")
			})
		})

		Convey("When the CSV has no name column", func() {
			w := do(mux, http.MethodPost, "/sessions/"+id+"/roster", "등번호\n1\n")

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestServer_Catalog(t *testing.T) {
	Convey("Given a server", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := newMux(svc, svc)

		Convey("When listing formations", func() {
			w := do(mux, http.MethodGet, "/formations", "")
			var templates []struct {
				Name  string            `json:"name"`
				Slots []json.RawMessage `json:"slots"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &templates), ShouldBeNil)

			Convey("Then the six templates are returned in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(templates, ShouldHaveLength, 6)
				So(templates[0].Name, ShouldEqual, "4-3-3")
				for _, tmpl := range templates {
					So(tmpl.Slots, ShouldHaveLength, 11)
				}
			})
		})

		Convey("When reading stats and health", func() {
			do(mux, http.MethodPost, "/sessions", "")
			stats := do(mux, http.MethodGet, "/stats", "")
			var st types.Stats
			So(json.Unmarshal(stats.Body.Bytes(), &st), ShouldBeNil)

			Convey("Then both answer", func() {
				So(stats.Code, ShouldEqual, http.StatusOK)
				So(st.Sessions, ShouldEqual, 1)
				health := do(mux, http.MethodGet, "/healthz", "")
				So(health.Code, ShouldEqual, http.StatusOK)
				So(health.Body.String(), ShouldContainSubstring, "lineup_service")
			})
		})
	})
}

func TestServer_Failures(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New()
		mux := newMux(svc, svc)

		Convey("Then writes answer 503", func() {
			w := do(mux, http.MethodPost, "/sessions", "")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(errorCode(w), ShouldEqual, "unavailable")
		})
	})

	Convey("Given dependencies that fail unexpectedly", t, func() {
		mux := newMux(brokenDeps{}, brokenDeps{})

		Convey("Then the failure is a 500 carrying the operation", func() {
			w := do(mux, http.MethodGet, "/sessions/x", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(errorCode(w), ShouldEqual, "internal_error")
			So(w.Body.String(), ShouldContainSubstring, "api.get_session")

			So(do(mux, http.MethodPost, "/sessions/x/roster", "a").Code, ShouldEqual, http.StatusInternalServerError)
			So(do(mux, http.MethodGet, "/sessions/x/share", "").Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}
