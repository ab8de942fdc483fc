// Package loginfield lets a host application choose which field of its
// user entity is the login identifier, "email" by default, and attach it
// to the user type's schema.
//
// Identifier setting:
//   - Identifier has two variants. StandardEmail is the default and is the
//     only one declared with the email format constraint. CustomField names
//     any other field, e.g. "username" or "login".
//   - Configure/CurrentIdentifier read and write a process wide Setting.
//     Configure during bootstrap, before any user type is composed. Hosts
//     that prefer explicit wiring build their own Setting or pass an
//     Identifier with WithIdentifier.
//
// Composition:
//   - Composer.Include resolves the identifier when it runs and calls
//     Schema.DeclareProperty exactly once with a text property that is
//     unique and required. Errors from the schema are returned unchanged.
//   - MemorySchema and repository.Schema reject a second declaration on
//     the same type.
//
// Known limitation: a custom field holding email shaped values is not
// format checked, and the email format is attached to StandardEmail even
// if the stored values are not emails.
package loginfield
