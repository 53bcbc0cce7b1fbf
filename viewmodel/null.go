package viewmodel

// nullable maps "" to nil and anything else to a pointer copy.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

// normalizePtr collapses a pointer to "" into nil, leaving other values
// untouched.
func normalizePtr(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
