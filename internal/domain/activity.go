package domain

import (
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ActivityCategory classifies an activity. The enumeration is closed; custom
// activities use CategoryCustom.
type ActivityCategory string

// Possible activity categories.
const (
	CategoryExercise      ActivityCategory = "exercise"
	CategorySocial        ActivityCategory = "social"
	CategoryHobby         ActivityCategory = "hobby"
	CategoryFamily        ActivityCategory = "family"
	CategoryHealth        ActivityCategory = "health"
	CategoryEntertainment ActivityCategory = "entertainment"
	CategoryWork          ActivityCategory = "work"
	CategoryCustom        ActivityCategory = "custom"
)

// MaxActivityNameLength is the display limit on activity names, counted in
// characters rather than bytes so CJK names are measured fairly.
const MaxActivityNameLength = 10

// categoryIcons maps each category to its default icon key.
var categoryIcons = map[ActivityCategory]string{
	CategoryExercise:      "figure.walk",
	CategorySocial:        "person.2",
	CategoryHobby:         "paintbrush",
	CategoryFamily:        "house",
	CategoryHealth:        "heart",
	CategoryEntertainment: "tv",
	CategoryWork:          "briefcase",
	CategoryCustom:        "star",
}

// categoryColors maps each category to its color key.
var categoryColors = map[ActivityCategory]string{
	CategoryExercise:      "category_exercise",
	CategorySocial:        "category_social",
	CategoryHobby:         "category_hobby",
	CategoryFamily:        "category_family",
	CategoryHealth:        "category_health",
	CategoryEntertainment: "category_entertainment",
	CategoryWork:          "category_work",
	CategoryCustom:        "category_custom",
}

// Icon returns the default icon key for the category.
func (c ActivityCategory) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryCustom]
}

// Color returns the color key for the category.
func (c ActivityCategory) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryCustom]
}

// isValidActivityCategory checks if the given category is part of the closed
// enumeration.
func isValidActivityCategory(c ActivityCategory) bool {
	_, ok := categoryIcons[c]
	return ok
}

// Activity is a named, categorized tag attached to mood entries. Predefined
// activities are process-wide constants; custom activities are user-created
// and persisted.
type Activity struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Category   ActivityCategory `json:"category"`
	IsCustom   bool             `json:"isCustom"`
	CustomIcon *string          `json:"customIcon"`
}

// NewCustomActivity creates a user-defined activity with a fresh ID.
// Returns an error if validation fails.
func NewCustomActivity(name string, category ActivityCategory, customIcon string) (*Activity, error) {
	activity := &Activity{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		IsCustom: true,
	}
	if customIcon != "" {
		activity.CustomIcon = &customIcon
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks if the Activity has valid data.
// Returns an error if any field fails validation.
func (a *Activity) Validate() error {
	if a.ID == uuid.Nil {
		return ErrInvalidID
	}

	if !validActivityName(a.Name) {
		return ErrInvalidActivityName
	}

	if !isValidActivityCategory(a.Category) {
		return ErrInvalidActivityCategory
	}

	return nil
}

// Icon returns the activity's display icon: the custom icon when set,
// otherwise the category default.
func (a *Activity) Icon() string {
	if a.CustomIcon != nil {
		return *a.CustomIcon
	}
	return a.Category.Icon()
}

// validActivityName reports whether name is 1-10 displayable characters.
func validActivityName(name string) bool {
	count := utf8.RuneCountInString(name)
	if count < 1 || count > MaxActivityNameLength {
		return false
	}
	for _, r := range name {
		if !unicode.IsGraphic(r) {
			return false
		}
	}
	return true
}

// predefinedActivityID derives a stable ID from the activity name so the
// predefined catalog is identical across processes. Entries embed full
// activity records, so stability matters for deduplication, not lookup.
func predefinedActivityID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("moodlog:activity:"+name))
}

// predefined builds one predefined catalog entry.
func predefined(name string, category ActivityCategory) Activity {
	return Activity{
		ID:       predefinedActivityID(name),
		Name:     name,
		Category: category,
		IsCustom: false,
	}
}

// PredefinedActivities is the immutable built-in activity catalog. Callers
// must treat it as read-only; stores copy it before handing it out.
var PredefinedActivities = []Activity{
	predefined("散步", CategoryExercise),
	predefined("太极", CategoryExercise),
	predefined("游泳", CategoryExercise),
	predefined("骑车", CategoryExercise),

	predefined("与朋友聊天", CategorySocial),
	predefined("参加聚会", CategorySocial),
	predefined("社区活动", CategorySocial),
	predefined("志愿服务", CategorySocial),

	predefined("阅读", CategoryHobby),
	predefined("书法", CategoryHobby),
	predefined("绘画", CategoryHobby),
	predefined("园艺", CategoryHobby),
	predefined("烹饪", CategoryHobby),

	predefined("与家人聊天", CategoryFamily),
	predefined("带孙子", CategoryFamily),
	predefined("家务", CategoryFamily),
	predefined("家庭聚餐", CategoryFamily),

	predefined("体检", CategoryHealth),
	predefined("吃药", CategoryHealth),
	predefined("按摩", CategoryHealth),
	predefined("休息", CategoryHealth),

	predefined("看电视", CategoryEntertainment),
	predefined("听音乐", CategoryEntertainment),
	predefined("看电影", CategoryEntertainment),
	predefined("打牌", CategoryEntertainment),
}
