package shape

import "strings"

// TagName is the struct tag key
const TagName = "csv"

// Tag represents csv field tag
type Tag struct {
	Name       string
	Default    string
	HasDefault bool
	Transient  bool
}

// ParseTag parses tag, default has to be the last element since its value may contain commas
func ParseTag(tagString string) *Tag {
	tag := &Tag{}
	if tagString == "-" {
		tag.Transient = true
		return tag
	}
	if tagString == "" {
		return tag
	}
	if index := strings.Index(tagString, "default="); index != -1 && (index == 0 || tagString[index-1] == ',') {
		tag.Default = tagString[index+len("default="):]
		tag.HasDefault = true
		tagString = strings.TrimSuffix(tagString[:index], ",")
	}
	elements := strings.Split(tagString, ",")
	for i, element := range elements {
		nv := strings.SplitN(element, "=", 2)
		switch len(nv) {
		case 2:
			switch strings.ToLower(strings.TrimSpace(nv[0])) {
			case "name":
				tag.Name = strings.TrimSpace(nv[1])
			}
		case 1:
			if i == 0 {
				tag.Name = strings.TrimSpace(element)
			}
		}
	}
	return tag
}
