package domain

// ThemeDescriptor is a static catalog entry describing a color theme. Unlock
// state is tracked separately by the entitlement store; the catalog itself is
// read-only.
type ThemeDescriptor struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	PrimaryColor    string  `json:"primaryColor"`
	BackgroundImage *string `json:"backgroundImage"`
	Price           int     `json:"price"`
	PreviewImage    string  `json:"previewImage"`
}

// DefaultThemeID is the theme applied before the user picks one.
const DefaultThemeID = "default"

// FreeThemeIDs is the free-tier unlock seed for the theme catalog.
var FreeThemeIDs = []string{"default", "warm_orange", "calm_blue"}

// AvailableThemes is the full theme catalog, in store display order.
var AvailableThemes = []ThemeDescriptor{
	{
		ID:           "default",
		Name:         "清新绿意",
		Description:  "经典的浅墨绿色主题，清新自然",
		PrimaryColor: "#66B399",
		Price:        0,
		PreviewImage: "theme_default",
	},
	{
		ID:           "warm_orange",
		Name:         "温暖夕阳",
		Description:  "温暖的橙色主题，如夕阳般舒适",
		PrimaryColor: "#E67E22",
		Price:        0,
		PreviewImage: "theme_orange",
	},
	{
		ID:           "calm_blue",
		Name:         "宁静海洋",
		Description:  "宁静的蓝色主题，如大海般平静",
		PrimaryColor: "#3498DB",
		Price:        0,
		PreviewImage: "theme_blue",
	},
	{
		ID:           "elegant_purple",
		Name:         "优雅薰衣草",
		Description:  "优雅的紫色主题，如薰衣草般迷人",
		PrimaryColor: "#9B59B6",
		Price:        0,
		PreviewImage: "theme_purple",
	},
	{
		ID:           "vibrant_pink",
		Name:         "活力樱花",
		Description:  "活力的粉色主题，如樱花般浪漫",
		PrimaryColor: "#E91E63",
		Price:        0,
		PreviewImage: "theme_pink",
	},
	{
		ID:           "dark_theme",
		Name:         "深邃夜空",
		Description:  "深色主题，护眼模式",
		PrimaryColor: "#2C3E50",
		Price:        0,
		PreviewImage: "theme_dark",
	},
}

// ThemeByID looks up a theme descriptor in the catalog.
// The second return value reports whether the ID exists.
func ThemeByID(id string) (ThemeDescriptor, bool) {
	for _, theme := range AvailableThemes {
		if theme.ID == id {
			return theme, true
		}
	}
	return ThemeDescriptor{}, false
}
