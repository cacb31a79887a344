package controller

import "time"

const (
	defaultPollInterval   = 5 * time.Second
	defaultBackoffInitial = time.Second
	defaultBackoffMax     = time.Minute
	defaultMaxReorgDepth  = 100

	reasonOperator = "operator"
	reasonReorg    = "reorg"
)
