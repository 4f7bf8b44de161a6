// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of the PostgreSQL schema.
//
// Repositories build their SQL from these definitions so that a column rename
// in data/migrations is a single edit here.
package schema
