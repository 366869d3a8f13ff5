package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/lineup/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestRole(t *testing.T) {
	convey.Convey("Given role labels", t, func() {
		convey.Convey("When parsing known labels", func() {
			for _, r := range model.Roles() {
				parsed, err := model.ParseRole(" " + r.String() + " ")
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldEqual, r)
			}
		})

		convey.Convey("When parsing lower case and empty labels", func() {
			cdm, err := model.ParseRole("cdm")
			convey.So(err, convey.ShouldBeNil)
			convey.So(cdm, convey.ShouldEqual, model.RoleCDM)

			none, err := model.ParseRole("")
			convey.So(err, convey.ShouldBeNil)
			convey.So(none, convey.ShouldEqual, model.RoleNone)
		})

		convey.Convey("When parsing an unknown label", func() {
			_, err := model.ParseRole("SW")
			convey.So(errors.Is(err, model.ErrUnknownRole), convey.ShouldBeTrue)
		})

		convey.Convey("Then categories follow the static table", func() {
			convey.So(model.RoleGK.Category(), convey.ShouldEqual, model.CategoryGK)
			convey.So(model.RoleRB.Category(), convey.ShouldEqual, model.CategoryDF)
			convey.So(model.RoleCAM.Category(), convey.ShouldEqual, model.CategoryMF)
			convey.So(model.RoleRM.Category(), convey.ShouldEqual, model.CategoryMF)
			convey.So(model.RoleCF.Category(), convey.ShouldEqual, model.CategoryFW)
		})

		convey.Convey("Then adjacency is a non-cyclic chain", func() {
			convey.So(model.CategoryGK.Adjacent(model.CategoryDF), convey.ShouldBeTrue)
			convey.So(model.CategoryMF.Adjacent(model.CategoryDF), convey.ShouldBeTrue)
			convey.So(model.CategoryFW.Adjacent(model.CategoryMF), convey.ShouldBeTrue)
			convey.So(model.CategoryFW.Adjacent(model.CategoryGK), convey.ShouldBeFalse)
			convey.So(model.CategoryMF.Adjacent(model.CategoryMF), convey.ShouldBeFalse)
		})
	})
}

func TestPersonAttendance(t *testing.T) {
	convey.Convey("Given an absent person", t, func() {
		p := model.Person{ID: "p1", Name: "Kim", Primary: model.RoleCM, Skill: model.SkillMedium}

		convey.Convey("When attendance is toggled on", func() {
			on := p.ToggleAttendance()

			convey.Convey("Then every quarter becomes available", func() {
				convey.So(on.Attending, convey.ShouldBeTrue)
				convey.So(on.Available, convey.ShouldResemble, model.AllQuarters)
				convey.So(p.Attending, convey.ShouldBeFalse)
			})

			convey.Convey("And toggling off clears the vector", func() {
				off := on.ToggleAttendance()
				convey.So(off.Attending, convey.ShouldBeFalse)
				convey.So(off.Available, convey.ShouldResemble, model.Availability{})
			})
		})

		convey.Convey("When single quarters are toggled", func() {
			q3, err := p.ToggleQuarter(2)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then participation is the OR of the vector", func() {
				convey.So(q3.Attending, convey.ShouldBeTrue)
				convey.So(q3.AvailableIn(2), convey.ShouldBeTrue)
				convey.So(q3.AvailableIn(0), convey.ShouldBeFalse)

				back, err := q3.ToggleQuarter(2)
				convey.So(err, convey.ShouldBeNil)
				convey.So(back.Attending, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When toggling an invalid quarter", func() {
			_, err := p.ToggleQuarter(4)
			convey.So(errors.Is(err, model.ErrInvalidQuarter), convey.ShouldBeTrue)
		})
	})
}

func TestPersonJSON(t *testing.T) {
	convey.Convey("Given a stored person record", t, func() {
		raw := `{"id":"2024000001","name":"Lee","number":17,"main_pos":"LB","sub_pos":"","skill_level":"High","is_mercenary":true,"is_attending":true,"available_quarters":[true,false,true,true]}`

		convey.Convey("When decoding", func() {
			var p model.Person
			err := json.Unmarshal([]byte(raw), &p)

			convey.Convey("Then the enums and flags are restored", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Primary, convey.ShouldEqual, model.RoleLB)
				convey.So(p.Secondary, convey.ShouldEqual, model.RoleNone)
				convey.So(p.Skill, convey.ShouldEqual, model.SkillHigh)
				convey.So(*p.Number, convey.ShouldEqual, 17)
				convey.So(p.Guest, convey.ShouldBeTrue)
				convey.So(p.Validate(), convey.ShouldBeNil)
			})

			convey.Convey("And encoding yields the same record", func() {
				out, err := json.Marshal(p)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(out), convey.ShouldEqual, raw)
			})
		})

		convey.Convey("When the skill is unknown", func() {
			var p model.Person
			err := json.Unmarshal([]byte(`{"skill_level":"Elite"}`), &p)
			convey.So(errors.Is(err, model.ErrUnknownSkill), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an elite quarter designator", t, func() {
		convey.Convey("Then none encodes as null and back", func() {
			b, err := json.Marshal(model.NoEliteQuarter)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(b), convey.ShouldEqual, "null")

			var e model.EliteQuarter
			convey.So(json.Unmarshal([]byte("null"), &e), convey.ShouldBeNil)
			convey.So(e, convey.ShouldEqual, model.NoEliteQuarter)
		})

		convey.Convey("Then an index selects one quarter", func() {
			var e model.EliteQuarter
			convey.So(json.Unmarshal([]byte("1"), &e), convey.ShouldBeNil)
			convey.So(e.Is(1), convey.ShouldBeTrue)
			convey.So(e.Is(0), convey.ShouldBeFalse)
			convey.So(model.NoEliteQuarter.Is(0), convey.ShouldBeFalse)
		})

		convey.Convey("Then out of range indices are rejected", func() {
			var e model.EliteQuarter
			err := json.Unmarshal([]byte("4"), &e)
			convey.So(errors.Is(err, model.ErrInvalidQuarter), convey.ShouldBeTrue)
		})
	})
}
