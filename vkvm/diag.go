package vkvm

import "github.com/archlab/cmdvm/internal/diag"

func defaultDiag() *diag.Sink { return diag.Default }
