package model

type CornerType string

const (
	CornerSlow   CornerType = "slow"
	CornerMedium CornerType = "medium"
	CornerFast   CornerType = "fast"
)

type Track struct {
	Name      string   `json:"name"      yaml:"name"`
	Length    float64  `json:"length"    yaml:"length"`    // km
	Turns     int      `json:"turns"     yaml:"turns"`
	LapRecord float64  `json:"lapRecord" yaml:"lapRecord"` // seconds
	Sectors   []Sector `json:"sectors"   yaml:"sectors"`
	Corners   []Corner `json:"corners"   yaml:"corners"`
}

type Corner struct {
	Number         int        `json:"number"         yaml:"number"`
	Name           string     `json:"name"           yaml:"name"`
	Type           CornerType `json:"type"           yaml:"type"`
	EntrySpeed     float64    `json:"entrySpeed"     yaml:"entrySpeed"` // km/h
	ExitSpeed      float64    `json:"exitSpeed"      yaml:"exitSpeed"`  // km/h
	Gear           int        `json:"gear"           yaml:"gear"`
	BrakingZone    bool       `json:"brakingZone"    yaml:"brakingZone"`
	GForceExpected float64    `json:"gForceExpected" yaml:"gForceExpected"`
}

type Sector struct {
	Number       int     `json:"number"       yaml:"number"`
	Length       float64 `json:"length"       yaml:"length"` // km
	Corners      []int   `json:"corners"      yaml:"corners"`
	ExpectedTime float64 `json:"expectedTime" yaml:"expectedTime"` // seconds
}

// CornerByType returns the first corner of the given type.
func (t *Track) CornerByType(ct CornerType) (*Corner, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Corners {
		if t.Corners[i].Type == ct {
			return &t.Corners[i], true
		}
	}
	return nil, false
}
