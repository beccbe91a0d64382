package model

const (
	PriceTypeBase       = "base"
	PriceTypeAdditional = "aditional"

	WidgetTypeSwitch = "switch"
	WidgetTypeRadio  = "radio"
)

// PriceConfig describes how one configurable dimension (e.g. "Size") is priced.
type PriceConfig struct {
	PriceType        string             `json:"priceType" bson:"priceType" validate:"required,oneof=base aditional"`
	AvailableOptions map[string]float64 `json:"availableOptions" bson:"availableOptions"`
}

// PriceConfiguration maps a configuration key to its pricing.
type PriceConfiguration map[string]PriceConfig

// Merge overlays update onto pc at the top level and returns a new map.
// Keys only in pc survive, keys in update replace the whole value.
func (pc PriceConfiguration) Merge(update PriceConfiguration) PriceConfiguration {
	merged := make(PriceConfiguration, len(pc)+len(update))
	for k, v := range pc {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

type Attribute struct {
	Name             string   `json:"name" bson:"name" validate:"required"`
	WidgetType       string   `json:"widgetType" bson:"widgetType" validate:"omitempty,oneof=switch radio"`
	DefaultValue     string   `json:"defaultValue" bson:"defaultValue"`
	AvailableOptions []string `json:"availableOptions" bson:"availableOptions"`
}

type Category struct {
	BaseModel
	Name               string             `db:"name" json:"name"`
	PriceConfiguration PriceConfiguration `db:"-" json:"priceConfiguration"`
	Attributes         []Attribute        `db:"-" json:"attributes"`
}
