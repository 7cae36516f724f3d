package main

import "time"

func secondsDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
