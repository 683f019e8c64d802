package model

const AnyRestaurantID = "any"

type Restaurant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r Restaurant) IsSentinel() bool {
	return r.ID == AnyRestaurantID
}
