package validation

import (
	"fmt"
	"strings"

	"github.com/platewise/backend/internal/types"
)

// ValidateProfileUpdate range-checks a partial profile update. Absent fields
// are left alone; present fields must be fully valid.
func ValidateProfileUpdate(req *types.ProfileUpdateRequest) error {
	verr := &ValidationError{}

	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		if len(trimmed) > 100 {
			verr.add("display_name", "display name must be 100 characters or less")
		}
		*req.DisplayName = trimmed
	}
	if req.Goal != nil && !contains(types.ValidGoals, *req.Goal) {
		verr.add("goal", fmt.Sprintf("must be one of: %s", strings.Join(types.ValidGoals, ", ")))
	}
	if req.WeeklyBudget != nil {
		if *req.WeeklyBudget < 0 || *req.WeeklyBudget > MaxBudget {
			verr.add("weekly_budget", "weekly budget must be between $0 and $10,000")
		}
	}
	if req.SkillLevel != nil && !contains(types.ValidSkillLevels, *req.SkillLevel) {
		verr.add("skill_level", fmt.Sprintf("must be one of: %s", strings.Join(types.ValidSkillLevels, ", ")))
	}
	if req.DietaryRestrictions != nil {
		if len(*req.DietaryRestrictions) > MaxDietarySelections {
			verr.add("dietary_restrictions", "at most 7 dietary restrictions")
		}
		for i, r := range *req.DietaryRestrictions {
			if !contains(types.ValidDietaryRestrictions, r) {
				verr.add(fmt.Sprintf("dietary_restrictions[%d]", i), fmt.Sprintf("unknown dietary restriction %q", r))
			}
		}
	}

	return verr.orNil()
}
