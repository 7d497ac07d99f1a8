//go:build !windows && !darwin

package config

func runtimeUsesXDG() bool { return true }
