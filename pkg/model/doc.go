// Package model contains the GORM models for the permission-auth database.
package model
