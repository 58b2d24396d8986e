package authz

const (
	PermissionUse   = "burnedbegone.use"
	PermissionAdmin = "burnedbegone.admin"
)

// DefaultGroup is the group every user implicitly belongs to.
const DefaultGroup = "default"

// Model is the casbin RBAC model: subjects hold permissions directly or
// through groups, and grants to the default group apply to everyone.
const Model = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || p.sub == "group:default") && r.obj == p.obj
`

// UserSubject maps a user id onto its casbin subject.
func UserSubject(userID string) string {
	return "user:" + userID
}

// GroupSubject maps a group name onto its casbin subject.
func GroupSubject(group string) string {
	return "group:" + group
}
