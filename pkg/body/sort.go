package body

// GeoDistanceKey marks a geo-distance sort descriptor. Entries carrying
// it are always appended as-is: several geo-distance criteria on
// different fields are legal, so they are never deduplicated.
const GeoDistanceKey = "_geo_distance"

// mergeSort applies one or more sort descriptors to the ordered sort
// list. A field already present has its direction updated in place,
// keeping its position; unknown fields are appended. Order in the list
// is the tie-break precedence at query time.
func mergeSort(current []map[string]any, descriptors ...map[string]any) []map[string]any {
	for _, descriptor := range descriptors {
		if _, ok := descriptor[GeoDistanceKey]; ok {
			current = append(current, descriptor)
			continue
		}

		for field, direction := range descriptor {
			if existing := findSortEntry(current, field); existing != nil {
				existing[field] = direction
				continue
			}
			current = append(current, map[string]any{field: direction})
		}
	}

	return current
}

func findSortEntry(list []map[string]any, field string) map[string]any {
	for _, entry := range list {
		if _, ok := entry[GeoDistanceKey]; ok {
			continue
		}
		if _, ok := entry[field]; ok {
			return entry
		}
	}
	return nil
}
