package query

// EncodeRange turns an optional (from, to) pair into the marketplace's
// compact range token: "min:max", "min:", ":max" or "". The literal
// string "null" on either side means the bound is absent.
func EncodeRange(from, to string) string {
	if from == "null" {
		from = ""
	}
	if to == "null" {
		to = ""
	}

	switch {
	case from != "" && to != "":
		return from + ":" + to
	case from != "":
		return from + ":"
	case to != "":
		return ":" + to
	default:
		return ""
	}
}
