package config

import "encoding/json"

// TagPatternList accepts either a single pattern string or a list of
// pattern strings in the config document, normalizing to a list.
type TagPatternList []string

func (l *TagPatternList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = TagPatternList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = TagPatternList(many)
	return nil
}

func (l TagPatternList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(l))
}
