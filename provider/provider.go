// Package provider holds Dictionary implementations other than the built-in
// static tables.
package provider

import "github.com/ZaguanLabs/sarf"

// Dictionary is an alias to the main package interface.
type Dictionary = sarf.Dictionary

// MorphEntry is an alias to the main package type.
type MorphEntry = sarf.MorphEntry
