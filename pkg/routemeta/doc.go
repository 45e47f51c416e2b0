// Package routemeta holds the explicit route registration table the
// authorization gate and the permission catalog synchronizer read from.
// Each route is registered with declarative metadata (handler group,
// method, optional overrides, skip flags) at service wiring time; nothing
// is discovered by reflection at request time.
package routemeta
