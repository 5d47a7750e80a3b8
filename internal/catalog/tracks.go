package catalog

// SilenceTrackID is the track that plays nothing. It is the default.
const SilenceTrackID = 0

// Track is an ambient loop played under the session
type Track struct {
	ID          int
	Name        string
	Description string
	Icon        string
	File        string // empty for silence
}

var tracks = []Track{
	{ID: 0, Name: "Silence", Description: "No background sound", Icon: "mute"},
	{ID: 1, Name: "Meditation", Description: "Soft pads and bowls", Icon: "peaceful", File: "meditation"},
	{ID: 2, Name: "Campfire", Description: "Crackling wood at night", Icon: "fire", File: "campfire"},
	{ID: 3, Name: "Forest", Description: "Birds and rustling leaves", Icon: "trees", File: "forest"},
	{ID: 4, Name: "Swamp", Description: "Frogs and insects", Icon: "swamp", File: "swamp"},
	{ID: 5, Name: "Rain", Description: "Steady rain on a roof", Icon: "rain", File: "rain"},
	{ID: 6, Name: "Waves", Description: "Surf on a sandy beach", Icon: "water", File: "waves"},
	{ID: 7, Name: "Wind", Description: "Wind through open fields", Icon: "wind", File: "wind"},
	{ID: 8, Name: "Sprinkler", Description: "A garden sprinkler ticking", Icon: "droplet", File: "sprinkler"},
	{ID: 9, Name: "Cat", Description: "A purring cat", Icon: "cat", File: "cat"},
	{ID: 10, Name: "Fan", Description: "Even fan hum", Icon: "fan", File: "fan"},
	{ID: 11, Name: "Piano", Description: "Slow solo piano", Icon: "piano", File: "piano"},
	{ID: 12, Name: "Lo-fi", Description: "Mellow beats", Icon: "music", File: "lofi"},
	{ID: 13, Name: "Water", Description: "A running stream", Icon: "water", File: "water"},
	{ID: 14, Name: "Paddling", Description: "Oars on a calm lake", Icon: "water", File: "paddling"},
	{ID: 15, Name: "Dishwasher", Description: "A dishwasher at work", Icon: "water", File: "dishwasher"},
}

// Tracks returns a copy of the track table, ordered by id
func Tracks() []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

// TrackByID looks up a track
func TrackByID(id int) (Track, bool) {
	for _, t := range tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Silent reports whether the track plays nothing
func (t Track) Silent() bool {
	return t.File == ""
}

// Clip returns the loop's clip id, e.g. "Track_rain". Silence has none.
func (t Track) Clip() string {
	if t.Silent() {
		return ""
	}
	return "Track_" + t.File
}
