package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Helsinki")
	if err != nil {
		panic(err)
	}
}

// force the timezone to be the store's local one, because a crawl host in
// another region would otherwise roll the snapshot date over at the wrong
// hour and split one day's catalogue across two dates.
func Now() time.Time {
	return time.Now().In(Location)
}
