package controllers

// Required fields of a submission, in the order their absence is reported.
var (
	requiredTop    = []string{"title", "user", "coords", "level"}
	requiredUser   = []string{"email", "fam", "name", "phone"}
	requiredCoords = []string{"latitude", "longitude", "height"}
)

// validateSubmission checks the raw payload for required fields and returns
// every missing dotted path, in declaration order. It never stops at the
// first violation. Only presence is checked here; coordinate ranges and
// grade membership are enforced when the rows are written.
func validateSubmission(payload map[string]any) []string {
	var missing []string

	for _, f := range requiredTop {
		if !truthy(payload[f]) {
			missing = append(missing, f)
		}
	}

	if user := asMap(payload["user"]); user != nil {
		for _, f := range requiredUser {
			if !truthy(user[f]) {
				missing = append(missing, "user."+f)
			}
		}
	}

	if coords := asMap(payload["coords"]); coords != nil {
		for _, f := range requiredCoords {
			if !truthy(coords[f]) {
				missing = append(missing, "coords."+f)
			}
		}
	}

	return missing
}

// truthy is the presence rule for required fields: absent, null, empty and
// zero values all count as missing. Note that this makes a numeric 0 fail
// the check, a quirk existing clients rely on.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}
