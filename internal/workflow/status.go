package workflow

// Status 成果审核状态
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusVerified    Status = "verified"
	StatusRejected    Status = "rejected"
)

// Role 操作者角色
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// transitionRule 单条状态转换规则
type transitionRule struct {
	roles           []Role
	ownerOnly       bool // 仅允许成果拥有者执行
	requiresComment bool
}

// transitionPair 状态转换端点
type transitionPair struct {
	from Status
	to   Status
}

// transitions 允许的状态转换表
// verified 没有出边,是终态;rejected -> pending 是学生修改后的重新提交
var transitions = map[transitionPair]transitionRule{
	{StatusPending, StatusUnderReview}: {roles: []Role{RoleFaculty, RoleAdmin}},
	{StatusUnderReview, StatusVerified}: {roles: []Role{RoleFaculty, RoleAdmin}},
	{StatusUnderReview, StatusRejected}: {roles: []Role{RoleFaculty, RoleAdmin}, requiresComment: true},
	{StatusRejected, StatusPending}:     {roles: []Role{RoleStudent}, ownerOnly: true},
	// 快速拒绝,跳过审核环节;评论策略与常规拒绝一致
	{StatusPending, StatusRejected}: {roles: []Role{RoleFaculty, RoleAdmin}, requiresComment: true},
}

// AllStatuses 返回全部合法状态
func AllStatuses() []Status {
	return []Status{StatusPending, StatusUnderReview, StatusVerified, StatusRejected}
}

// ValidStatus 判断状态值是否合法
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// ValidRole 判断角色值是否合法
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// IsTerminal 判断状态是否为终态
func IsTerminal(s Status) bool {
	return s == StatusVerified
}

// CanTransition 判断 (from, to) 是否在允许的转换表中
func CanTransition(from, to Status) bool {
	_, ok := transitions[transitionPair{from, to}]
	return ok
}

// AllowedRoles 返回允许执行某个转换的角色集合
// 转换不存在时返回 nil
func AllowedRoles(from, to Status) []Role {
	rule, ok := transitions[transitionPair{from, to}]
	if !ok {
		return nil
	}
	roles := make([]Role, len(rule.roles))
	copy(roles, rule.roles)
	return roles
}

// OwnerOnly 判断某个转换是否仅限成果拥有者执行
func OwnerOnly(from, to Status) bool {
	rule, ok := transitions[transitionPair{from, to}]
	return ok && rule.ownerOnly
}

// RequiresComment 判断某个转换是否要求非空评论
func RequiresComment(from, to Status) bool {
	rule, ok := transitions[transitionPair{from, to}]
	return ok && rule.requiresComment
}

// roleAllowed 判断角色是否在转换的允许集合中
func roleAllowed(rule transitionRule, role Role) bool {
	for _, r := range rule.roles {
		if r == role {
			return true
		}
	}
	return false
}
