// Package domain defines the core business entities of the mood journal:
// mood entries, activities, the theme and skin-pack catalogs, and the user
// profile. Entities validate themselves; persistence concerns live in the
// store package.
package domain
