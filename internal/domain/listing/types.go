package listing

type HousingType string

const (
	HousingApartment HousingType = "apartment"
	HousingHouse     HousingType = "house"
	HousingStudio    HousingType = "studio"
)

func (h HousingType) String() string {
	return string(h)
}

func (h HousingType) IsValid() bool {
	switch h {
	case HousingApartment, HousingHouse, HousingStudio:
		return true
	default:
		return false
	}
}

func NewHousingType(s string) (HousingType, error) {
	h := HousingType(s)
	if !h.IsValid() {
		return "", ErrInvalidHousingType
	}
	return h, nil
}
