package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseSizes parses a comma-separated point-size menu such as "16,32,64".
func parseSizes(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var sizes []int
	seen := map[int]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size: %q", part)
		}
		if n <= 0 {
			return nil, fmt.Errorf("size must be positive: %d", n)
		}
		if seen[n] {
			return nil, fmt.Errorf("duplicate size: %d", n)
		}
		seen[n] = true
		sizes = append(sizes, n)
	}
	return sizes, nil
}
