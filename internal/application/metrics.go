package application

import "expvar"

// Counters published on /debug/vars.
var (
	signupsTotal   = expvar.NewInt("users_signups_total")
	signinsTotal   = expvar.NewInt("users_signins_total")
	updatesTotal   = expvar.NewInt("users_updates_total")
	carsAddedTotal = expvar.NewInt("cars_added_total")
)
