package seed

// Entry is a single starter bookmark in the YAML file.
type Entry struct {
	Title    string `yaml:"title"`
	Location string `yaml:"location"`
}

// Config is the root structure of the starter-bookmarks file: a flat
// list of entries.
type Config []Entry
