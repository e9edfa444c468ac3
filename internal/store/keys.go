package store

// Key layout of the store. Per-user keys append the user name to a prefix.
const (
	ProfileKeyPrefix    = "nutri_profile_"
	ActiveUserKey       = "nutri_active_user"
	ThemeKey            = "nutri_theme_preference"
	WorkingDayKeyPrefix = "nutri_today_"
	HistoryKeyPrefix    = "nutri_history_"
	FoodCacheKey        = "nutri_food_cache"
)

func ProfileKey(user string) string    { return ProfileKeyPrefix + user }
func WorkingDayKey(user string) string { return WorkingDayKeyPrefix + user }
func HistoryKey(user string) string    { return HistoryKeyPrefix + user }
