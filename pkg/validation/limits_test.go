package validation

import (
	"strings"
	"testing"

	dErrors "skillforge/pkg/domain-errors"

	"github.com/stretchr/testify/suite"
)

// LimitsSuite checks the max and max+1 boundaries of each helper.
type LimitsSuite struct {
	suite.Suite
}

func TestLimitsSuite(t *testing.T) {
	suite.Run(t, new(LimitsSuite))
}

func (s *LimitsSuite) TestCheckSliceCount() {
	s.Run("passes when count equals max", func() {
		s.NoError(CheckSliceCount("skills", MaxSkills, MaxSkills))
	})

	s.Run("passes when count is zero", func() {
		s.NoError(CheckSliceCount("skills", 0, MaxSkills))
	})

	s.Run("fails when count exceeds max", func() {
		err := CheckSliceCount("skills", MaxSkills+1, MaxSkills)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "too many skills: max 50 allowed")
	})
}

func (s *LimitsSuite) TestCheckStringLength() {
	s.Run("passes at max length", func() {
		s.NoError(CheckStringLength("course_id", strings.Repeat("a", MaxCourseIDLength), MaxCourseIDLength))
	})

	s.Run("fails one past max length", func() {
		err := CheckStringLength("course_id", strings.Repeat("a", MaxCourseIDLength+1), MaxCourseIDLength)
		s.Require().Error(err)
		s.Contains(err.Error(), "course_id exceeds max length of 100")
	})
}

func (s *LimitsSuite) TestCheckEachStringLength() {
	s.Run("passes when every element fits", func() {
		s.NoError(CheckEachStringLength("skills", []string{"React", "Go"}, MaxSkillLength))
	})

	s.Run("fails when any element is too long", func() {
		err := CheckEachStringLength("skills", []string{"React", strings.Repeat("x", MaxSkillLength+1)}, MaxSkillLength)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
