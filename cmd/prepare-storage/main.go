// linkedinsolvers - interactive solvers for grid logic puzzles.
// Copyright (C) 2025 the LinkedInSolvers authors.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// Bring the storage system up to date without touching existing data.
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/aidenzhou8/LinkedInSolvers/dbprep"
)

var log = logrus.New()

func main() {
	log.Printf("Preparing data storage...")
	if err := dbprep.EnsureData(); err != nil {
		log.Fatalf("Couldn't prepare storage: %v", err)
	}
	log.Printf("Database ready.")
}
