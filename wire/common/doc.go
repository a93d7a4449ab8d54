// Package common provides the types shared by every layer of the OpenWire
// client: the error model, the configuration structures and the logger setup.
//
// The package focuses on:
//   - A single error type carrying kind (argument, protocol, transport),
//     reason, operation, offending value and a trail of file/line marks
//   - Configuration structures with named, defaulted fields for the
//     transport, the wire format and the client as a whole
//   - Custom logging implementation integrated with Dragonboat's logger package
//
// Key Components:
//
//   - Error: returned by the codec and the transport. Match it with errors.Is
//     against the package sentinels (ErrClosed, ErrUnknownType, ...) or inspect
//     Kind/Reason directly. Mark appends the caller as the error propagates,
//     Clone copies it without losing kind and reason.
//
//   - TransportConfig / WireFormatConfig / ClientConfig: configuration
//     consumed by the transport and the wire format, with Default* constructors
//     and String() renderers for diagnostics.
//
//   - InitLoggers: installs the custom logger factory and applies one level
//     to all named loggers of the module.
package common
