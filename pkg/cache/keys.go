package cache

import (
	"fmt"
	"strconv"
)

// cache key for the area directory.
func AreaInfoKey() string {
	return "area_info"
}

// cache key for the home page house list.
func HomePageKey() string {
	return "home_page_data"
}

// cache key for a house detail record.
func HouseInfoKey(houseID int64) string {
	return fmt.Sprintf("house_info_%d", houseID)
}

// cache key for the hash holding every cached page of one listing filter.
// Absent filters are encoded as empty strings.
func HouseListKey(areaID, startDate, endDate, sortKey string) string {
	return fmt.Sprintf("houses_%s_%s_%s_%s", areaID, startDate, endDate, sortKey)
}

// hash field for a listing page.
func HouseListField(page int) string {
	return strconv.Itoa(page)
}
