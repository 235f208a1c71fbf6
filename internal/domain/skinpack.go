package domain

// SkinPackDescriptor is a static catalog entry describing a set of mood
// images, one per mood level. Unlock state lives in the entitlement store.
type SkinPackDescriptor struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	MoodImages   map[int]string `json:"moodImages"`
	PreviewImage string         `json:"previewImage"`
	IsPremium    bool           `json:"isPremium"`
	PriceLabel   *string        `json:"price"`
}

// DefaultSkinPackID is the skin pack applied before the user picks one.
const DefaultSkinPackID = "default_emoji"

// FreeSkinPackIDs is the free-tier unlock seed for the skin-pack catalog.
var FreeSkinPackIDs = []string{"default_emoji", "cute_animals"}

// MoodEmoji returns the fallback emoji for a mood level, used when a pack
// has no image registered for that level.
func MoodEmoji(level int) string {
	switch level {
	case 1:
		return "😢"
	case 2:
		return "😕"
	case 3:
		return "😐"
	case 4:
		return "😊"
	case 5:
		return "😄"
	default:
		return "😐"
	}
}

// MoodImage returns the pack's display image for a mood level, falling back
// to the generic emoji when the pack has none.
func (p *SkinPackDescriptor) MoodImage(level int) string {
	if image, ok := p.MoodImages[level]; ok {
		return image
	}
	return MoodEmoji(level)
}

func priceLabel(s string) *string { return &s }

// AvailableSkinPacks is the full skin-pack catalog, in store display order.
var AvailableSkinPacks = []SkinPackDescriptor{
	{
		ID:          "default_emoji",
		Name:        "经典表情",
		Description: "传统的表情符号，简洁明了",
		Category:    "表情",
		MoodImages: map[int]string{
			1: "😢", 2: "😕", 3: "😐", 4: "😊", 5: "😄",
		},
		PreviewImage: "pack_default_preview",
		IsPremium:    false,
	},
	{
		ID:          "cute_animals",
		Name:        "可爱动物",
		Description: "萌萌的小动物陪您记录心情",
		Category:    "动物",
		MoodImages: map[int]string{
			1: "😿", 2: "🐶", 3: "🐼", 4: "🐰", 5: "🦊",
		},
		PreviewImage: "pack_animals_preview",
		IsPremium:    false,
	},
	{
		ID:          "nature_scenes",
		Name:        "自然风光",
		Description: "美丽的自然景色，感受大自然的力量",
		Category:    "自然",
		MoodImages: map[int]string{
			1: "⛈️", 2: "☁️", 3: "🌊", 4: "☀️", 5: "🌈",
		},
		PreviewImage: "pack_nature_preview",
		IsPremium:    true,
		PriceLabel:   priceLabel("¥6"),
	},
	{
		ID:          "food_mood",
		Name:        "美食心情",
		Description: "用美食来表达您的心情",
		Category:    "美食",
		MoodImages: map[int]string{
			1: "🥒", 2: "🍋", 3: "🍞", 4: "🍰", 5: "🍭",
		},
		PreviewImage: "pack_food_preview",
		IsPremium:    true,
		PriceLabel:   priceLabel("¥6"),
	},
	{
		ID:          "flowers",
		Name:        "花朵物语",
		Description: "用花朵的美丽表达内心的感受",
		Category:    "自然",
		MoodImages: map[int]string{
			1: "🥀", 2: "🌹", 3: "🌼", 4: "🌻", 5: "🌺",
		},
		PreviewImage: "pack_flowers_preview",
		IsPremium:    true,
		PriceLabel:   priceLabel("¥8"),
	},
	{
		ID:          "weather",
		Name:        "天气心情",
		Description: "像天气一样变化的心情",
		Category:    "天气",
		MoodImages: map[int]string{
			1: "⛈️", 2: "🌧️", 3: "☁️", 4: "⛅", 5: "☀️",
		},
		PreviewImage: "pack_weather_preview",
		IsPremium:    true,
		PriceLabel:   priceLabel("¥6"),
	},
}

// SkinPackByID looks up a skin-pack descriptor in the catalog.
// The second return value reports whether the ID exists.
func SkinPackByID(id string) (SkinPackDescriptor, bool) {
	for _, pack := range AvailableSkinPacks {
		if pack.ID == id {
			return pack, true
		}
	}
	return SkinPackDescriptor{}, false
}
