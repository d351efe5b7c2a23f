/*
Package animation builds light programs for the buttons.

Every constructor is a pure function returning a freshly allocated domain.Animation,
so directives never share step slices. Colors are looked up by name from a fixed
palette; unknown names resolve to Black instead of failing.
*/
package animation
