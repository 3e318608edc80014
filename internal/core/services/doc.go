// Package services contains the core business logic, implementing the
// driving ports using the driven ports. Services are framework-free:
// all I/O goes through injected adapters.
package services
