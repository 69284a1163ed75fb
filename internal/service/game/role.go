package game

// 技能名称
const (
	SKILL_KILL     = "Kill"
	SKILL_CHECK    = "Check"
	SKILL_ANTIDOTE = "Antidote"
	SKILL_POISON   = "Poison"
)

// Unlimited 表示技能没有使用次数限制
const Unlimited = -1

// Skill 归属于唯一的 Role 实例，记录本局剩余次数
type Skill struct {
	Name      string `json:"name"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

func newSkill(name string, limit int) *Skill {
	return &Skill{
		Name:      name,
		Limit:     limit,
		Remaining: limit,
	}
}

func (s *Skill) IsUnlimited() bool {
	return s.Limit == Unlimited
}

func (s *Skill) IsAvailable() bool {
	return s.IsUnlimited() || s.Remaining > 0
}

// Use 消耗一次使用次数，次数不会变为负数
func (s *Skill) Use() {
	if s.IsUnlimited() || s.Remaining <= 0 {
		return
	}

	s.Remaining--
}

func (s *Skill) Reset() {
	s.Remaining = s.Limit
}

// roleTraits 是角色的能力表，角色之间的差异全部体现在这里
type roleTraits struct {
	camp        Camp
	divine      bool
	nightAction bool
	skills      func() []*Skill
}

var roleTable = map[RoleKind]roleTraits{
	RoleWolf: {
		camp:        CampWolf,
		nightAction: true,
		skills: func() []*Skill {
			return []*Skill{newSkill(SKILL_KILL, Unlimited)}
		},
	},
	RoleSeer: {
		camp:        CampGood,
		divine:      true,
		nightAction: true,
		skills: func() []*Skill {
			return []*Skill{newSkill(SKILL_CHECK, Unlimited)}
		},
	},
	RoleWitch: {
		camp:        CampGood,
		divine:      true,
		nightAction: true,
		skills: func() []*Skill {
			return []*Skill{
				newSkill(SKILL_ANTIDOTE, 1),
				newSkill(SKILL_POISON, 1),
			}
		},
	},
	RolePlain: {
		camp: CampGood,
		skills: func() []*Skill {
			return nil
		},
	},
}

// DisplayName 返回角色的中文名称
func (k RoleKind) DisplayName() string {
	switch k {
	case RoleWolf:
		return "狼人"
	case RoleSeer:
		return "预言家"
	case RoleWitch:
		return "女巫"
	case RolePlain:
		return "平民"
	default:
		return "未知"
	}
}

// 标准六人局的角色分布
var StandardRoleSet = []RoleKind{
	RoleWolf, RoleWolf,
	RoleSeer,
	RoleWitch,
	RolePlain, RolePlain,
}

type Role struct {
	Kind RoleKind `json:"kind"`

	skills     []*Skill
	firstNight bool
}

// NewRole 根据能力表构造角色，未知类型返回 nil
func NewRole(kind RoleKind) *Role {
	traits, ok := roleTable[kind]
	if !ok {
		return nil
	}

	return &Role{
		Kind:       kind,
		skills:     traits.skills(),
		firstNight: kind == RoleWitch,
	}
}

func (r *Role) Camp() Camp {
	return roleTable[r.Kind].camp
}

func (r *Role) IsDivine() bool {
	return roleTable[r.Kind].divine
}

func (r *Role) HasNightAction() bool {
	return roleTable[r.Kind].nightAction
}

func (r *Role) Skills() []*Skill {
	return r.skills
}

func (r *Role) Skill(name string) *Skill {
	for _, s := range r.skills {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// 以下仅对女巫有意义，其他角色返回 nil / false

func (r *Role) Antidote() *Skill {
	return r.Skill(SKILL_ANTIDOTE)
}

func (r *Role) Poison() *Skill {
	return r.Skill(SKILL_POISON)
}

func (r *Role) IsFirstNight() bool {
	return r.firstNight
}

func (r *Role) MarkFirstNightPassed() {
	r.firstNight = false
}

// ResetSkills 恢复所有技能次数和首夜标记，用于同一房间重开一局
func (r *Role) ResetSkills() {
	for _, s := range r.skills {
		s.Reset()
	}

	r.firstNight = r.Kind == RoleWitch
}
