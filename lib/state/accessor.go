package state

import (
	"fmt"
	"reflect"

	"github.com/ValentinKolb/vrpstate/lib/problem"
)

// --------------------------------------------------------------------------
// Typed reads
// --------------------------------------------------------------------------

// typeName returns the name of T, also for interface types
func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// isInterface reports whether T is an interface type and so accepts an untyped nil
func isInterface[T any]() bool {
	return reflect.TypeOf((*T)(nil)).Elem().Kind() == reflect.Interface
}

// typed converts a raw engine value into T. Absent values are not an error.
func typed[T any](m *Manager, s scope, id StateId, value any, loaded bool) (T, bool, error) {
	var zero T
	m.metrics.get(s, loaded)
	if !loaded {
		return zero, false, nil
	}
	if t, ok := value.(T); ok {
		return t, true, nil
	}
	if value == nil && isInterface[T]() {
		return zero, true, nil
	}
	m.metrics.mismatch(s)
	return zero, true, NewError(RetCTypeMismatch,
		fmt.Sprintf("%s state %s holds %T, requested %s", s, id, value, typeName[T]()))
}

// withDefault falls back to the declared default of the scope family when no live
// value is present
func withDefault[T any](m *Manager, s scope, id StateId, value any, loaded bool) (T, bool, error) {
	if !loaded {
		if def, ok := m.defaults.table(s)[id.index]; ok {
			m.metrics.defaulted()
			return typed[T](m, s, id, def, true)
		}
	}
	return typed[T](m, s, id, value, loaded)
}

func invalid[T any](err *Error) (T, bool, error) {
	var zero T
	return zero, false, err
}

// --------------------------------------------------------------------------
// Problem scope
// --------------------------------------------------------------------------

// PutProblemState stores value as the problem-global state of id.
func PutProblemState[T any](m *Manager, id StateId, value T) {
	if err := m.checkId(id); err != nil {
		plog.Errorf("dropping problem write: %v", err)
		return
	}
	m.engine.PutProblem(id.index, value)
	m.metrics.put(scopeProblem)
}

// ProblemState returns the live problem-global state of id.
// The boolean is false if no value was stored since the last Clear.
func ProblemState[T any](m *Manager, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetProblem(id.index)
	return typed[T](m, scopeProblem, id, v, ok)
}

// ProblemStateOrDefault is like ProblemState but returns the declared default if no
// live value exists.
func ProblemStateOrDefault[T any](m *Manager, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetProblem(id.index)
	return withDefault[T](m, scopeProblem, id, v, ok)
}

// --------------------------------------------------------------------------
// Route scopes
// --------------------------------------------------------------------------

// PutRouteState stores value as the state of id for route.
func PutRouteState[T any](m *Manager, route problem.Route, id StateId, value T) {
	if err := m.checkId(id); err != nil {
		plog.Errorf("dropping route write: %v", err)
		return
	}
	m.engine.PutRoute(route, id.index, value)
	m.metrics.put(scopeRoute)
}

// RouteState returns the live state of id for route.
func RouteState[T any](m *Manager, route problem.Route, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetRoute(route, id.index)
	return typed[T](m, scopeRoute, id, v, ok)
}

// RouteStateOrDefault is like RouteState but falls back to the declared route default.
func RouteStateOrDefault[T any](m *Manager, route problem.Route, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetRoute(route, id.index)
	return withDefault[T](m, scopeRoute, id, v, ok)
}

// PutRouteVehicleState stores value as the state of id for route, assuming it is
// served by vehicle. It never affects the vehicle independent route state.
func PutRouteVehicleState[T any](m *Manager, route problem.Route, vehicle problem.Vehicle, id StateId, value T) {
	if err := m.checkId(id); err != nil {
		plog.Errorf("dropping route/vehicle write: %v", err)
		return
	}
	m.engine.PutRouteVehicle(route, vehicle, id.index, value)
	m.metrics.put(scopeRouteVehicle)
}

// RouteVehicleState returns the live state of id for route and vehicle.
func RouteVehicleState[T any](m *Manager, route problem.Route, vehicle problem.Vehicle, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetRouteVehicle(route, vehicle, id.index)
	return typed[T](m, scopeRouteVehicle, id, v, ok)
}

// RouteVehicleStateOrDefault is like RouteVehicleState but falls back to the declared
// route default.
func RouteVehicleStateOrDefault[T any](m *Manager, route problem.Route, vehicle problem.Vehicle, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetRouteVehicle(route, vehicle, id.index)
	return withDefault[T](m, scopeRouteVehicle, id, v, ok)
}

// --------------------------------------------------------------------------
// Activity scopes
// --------------------------------------------------------------------------

// PutActivityState stores value as the state of id for activity.
func PutActivityState[T any](m *Manager, activity problem.Activity, id StateId, value T) {
	if err := m.checkId(id); err != nil {
		plog.Errorf("dropping activity write: %v", err)
		return
	}
	m.engine.PutActivity(activity, id.index, value)
	m.metrics.put(scopeActivity)
}

// ActivityState returns the live state of id for activity.
func ActivityState[T any](m *Manager, activity problem.Activity, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetActivity(activity, id.index)
	return typed[T](m, scopeActivity, id, v, ok)
}

// ActivityStateOrDefault is like ActivityState but falls back to the declared activity default.
func ActivityStateOrDefault[T any](m *Manager, activity problem.Activity, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetActivity(activity, id.index)
	return withDefault[T](m, scopeActivity, id, v, ok)
}

// PutActivityVehicleState stores value as the state of id for activity, assuming its
// route is served by vehicle.
func PutActivityVehicleState[T any](m *Manager, activity problem.Activity, vehicle problem.Vehicle, id StateId, value T) {
	if err := m.checkId(id); err != nil {
		plog.Errorf("dropping activity/vehicle write: %v", err)
		return
	}
	m.engine.PutActivityVehicle(activity, vehicle, id.index, value)
	m.metrics.put(scopeActivityVehicle)
}

// ActivityVehicleState returns the live state of id for activity and vehicle.
func ActivityVehicleState[T any](m *Manager, activity problem.Activity, vehicle problem.Vehicle, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetActivityVehicle(activity, vehicle, id.index)
	return typed[T](m, scopeActivityVehicle, id, v, ok)
}

// ActivityVehicleStateOrDefault is like ActivityVehicleState but falls back to the
// declared activity default.
func ActivityVehicleStateOrDefault[T any](m *Manager, activity problem.Activity, vehicle problem.Vehicle, id StateId) (T, bool, error) {
	if err := m.checkId(id); err != nil {
		return invalid[T](err)
	}
	v, ok := m.engine.GetActivityVehicle(activity, vehicle, id.index)
	return withDefault[T](m, scopeActivityVehicle, id, v, ok)
}
