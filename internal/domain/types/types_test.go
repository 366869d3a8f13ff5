package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/rotation"
	"github.com/okian/lineup/internal/domain/state"
	"github.com/okian/lineup/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerationReport(t *testing.T) {
	Convey("Given a rotation result", t, func() {
		res := rotation.Result{
			Starts:        map[string]int{"c": 2, "a": 4, "b": 3},
			ForcedKeepers: []string{"b"},
			UnfilledSlots: 5,
		}

		Convey("When a report is built", func() {
			r := types.NewGenerationReport(res)

			Convey("Then start counts are sorted by id", func() {
				So(r.Starts, ShouldResemble, []types.StartCount{
					{PersonID: "a", Starts: 4},
					{PersonID: "b", Starts: 3},
					{PersonID: "c", Starts: 2},
				})
				So(r.ForcedKeepers, ShouldResemble, []string{"b"})
				So(r.UnfilledSlots, ShouldEqual, 5)
			})
		})

		Convey("When the result has no forced keepers", func() {
			r := types.NewGenerationReport(rotation.Result{})
			raw, err := json.Marshal(r)

			Convey("Then empty lists encode as arrays", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldEqual, `{"starts":[],"forced_keepers":[],"unfilled_slots":0}`)
			})
		})
	})
}

func TestSession(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		s := types.Session{ID: "abc", State: state.New(formation.F442, model.NoEliteQuarter)}

		Convey("When it is encoded", func() {
			raw, err := json.Marshal(s)

			Convey("Then optional fields are omitted", func() {
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `"id":"abc"`)
				So(string(raw), ShouldContainSubstring, `"formation":"4-4-2"`)
				So(string(raw), ShouldContainSubstring, `"elite_quarter":null`)
				So(string(raw), ShouldNotContainSubstring, "generation")
				So(string(raw), ShouldNotContainSubstring, "duplicate")
			})
		})
	})
}
