// Package models defines the fitness tracker's data types and the JSON shapes
// exchanged with the backend.
//
// Wire field names are snake_case and are mapped onto Go field names with
// struct tags. Optional numeric fields are pointers so that an absent value
// is distinguishable from zero.
package models
