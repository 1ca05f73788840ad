// Package portal contiene el core de decisión de acceso:
//
//   - Resolver: mapea (actor, recurso, portal activo) a un veredicto
//     (allow, 404, redirect a login, redirect configurado).
//   - StateMachine: maneja el portal activo por usuario (selección, switch,
//     staleness, expiración por TTL).
//   - MenuFilter: resuelve el menú a renderizar y poda entradas inaccesibles.
//   - Switcher, Landing, ListingFilter: flujos derivados (cambio de portal,
//     destino post-login, visibilidad en listados/sitemaps).
//
// El estado de sesión no vive en globals: actor, membresías y portal activo
// se pasan explícitos en cada llamada, lo que deja al Resolver como función
// pura (el único efecto es activar un portal al visitarlo siendo miembro).
package portal
