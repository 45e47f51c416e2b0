package routemeta

// Required resolves the single permission a route demands.
//
// Precedence, highest first: a skip (or anonymous) flag means no
// permission is ever required; an explicit override names the permission
// outright; a nil Meta means the request did not map to a registered
// route and passes unenforced (fail-open — see the registry docs);
// otherwise the convention-derived name is required. A group whose
// module name collapses to nothing has no derivable permission and also
// resolves to "none required".
func Required(meta *Meta) (string, bool) {
	if meta == nil {
		return "", false
	}
	if meta.Skip || meta.Anonymous {
		return "", false
	}
	if meta.Permission != "" {
		return meta.Permission, true
	}
	name := Name(meta)
	if name == "" {
		return "", false
	}
	return name, true
}
